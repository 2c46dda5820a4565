package colors

import "math"

func seg(rows ...[3]float64) Channel {
	s := make([]Segment, len(rows))
	for i, r := range rows {
		s[i] = Segment{X: r[0], Y0: r[1], Y1: r[2]}
	}
	return Channel{Segments: s}
}

func fn(f func(x float64) float64) Channel { return Channel{Func: f} }

func builtinData() map[string]SegmentData {
	ramp := seg([3]float64{0, 0, 0}, [3]float64{1, 1, 1})
	hot := SegmentData{
		Red:   seg([3]float64{0, 0.0416, 0.0416}, [3]float64{0.365079, 1, 1}, [3]float64{1, 1, 1}),
		Green: seg([3]float64{0, 0, 0}, [3]float64{0.365079, 0, 0}, [3]float64{0.746032, 1, 1}, [3]float64{1, 1, 1}),
		Blue:  seg([3]float64{0, 0, 0}, [3]float64{0.746032, 0, 0}, [3]float64{1, 1, 1}),
	}
	// pink is sqrt((2*gray + hot)/3) per channel.
	pinkOf := func(ch Channel) Channel {
		vals, _ := sampleChannel(ch, 1024)
		return fn(func(x float64) float64 {
			h := vals[int(math.Round(x*1023))]
			return math.Sqrt((2*x + h) / 3)
		})
	}
	prism := func(phase, amp, off float64) Channel {
		return fn(func(x float64) float64 { return amp*math.Sin((x*20.9+phase)*math.Pi) + off })
	}
	flag := func(phase, amp, off float64) Channel {
		return fn(func(x float64) float64 { return amp*math.Sin((x*31.5+phase)*math.Pi) + off })
	}

	return map[string]SegmentData{
		"gray":   {Red: ramp, Green: ramp, Blue: ramp},
		"binary": {Red: seg([3]float64{0, 1, 1}, [3]float64{1, 0, 0}), Green: seg([3]float64{0, 1, 1}, [3]float64{1, 0, 0}), Blue: seg([3]float64{0, 1, 1}, [3]float64{1, 0, 0})},
		"jet": {
			Red:   seg([3]float64{0, 0, 0}, [3]float64{0.35, 0, 0}, [3]float64{0.66, 1, 1}, [3]float64{0.89, 1, 1}, [3]float64{1, 0.5, 0.5}),
			Green: seg([3]float64{0, 0, 0}, [3]float64{0.125, 0, 0}, [3]float64{0.375, 1, 1}, [3]float64{0.64, 1, 1}, [3]float64{0.91, 0, 0}, [3]float64{1, 0, 0}),
			Blue:  seg([3]float64{0, 0.5, 0.5}, [3]float64{0.11, 1, 1}, [3]float64{0.34, 1, 1}, [3]float64{0.65, 0, 0}, [3]float64{1, 0, 0}),
		},
		"hot": hot,
		"cool": {
			Red:   ramp,
			Green: seg([3]float64{0, 1, 1}, [3]float64{1, 0, 0}),
			Blue:  seg([3]float64{0, 1, 1}, [3]float64{1, 1, 1}),
		},
		"copper": {
			Red:   seg([3]float64{0, 0, 0}, [3]float64{0.809524, 1, 1}, [3]float64{1, 1, 1}),
			Green: seg([3]float64{0, 0, 0}, [3]float64{1, 0.7812, 0.7812}),
			Blue:  seg([3]float64{0, 0, 0}, [3]float64{1, 0.4975, 0.4975}),
		},
		"bone": {
			Red:   seg([3]float64{0, 0, 0}, [3]float64{0.746032, 0.652778, 0.652778}, [3]float64{1, 1, 1}),
			Green: seg([3]float64{0, 0, 0}, [3]float64{0.365079, 0.319444, 0.319444}, [3]float64{0.746032, 0.777778, 0.777778}, [3]float64{1, 1, 1}),
			Blue:  seg([3]float64{0, 0, 0}, [3]float64{0.365079, 0.444444, 0.444444}, [3]float64{1, 1, 1}),
		},
		"pink": {Red: pinkOf(hot.Red), Green: pinkOf(hot.Green), Blue: pinkOf(hot.Blue)},
		"spring": {
			Red:   seg([3]float64{0, 1, 1}, [3]float64{1, 1, 1}),
			Green: ramp,
			Blue:  seg([3]float64{0, 1, 1}, [3]float64{1, 0, 0}),
		},
		"summer": {
			Red:   ramp,
			Green: seg([3]float64{0, 0.5, 0.5}, [3]float64{1, 1, 1}),
			Blue:  seg([3]float64{0, 0.4, 0.4}, [3]float64{1, 0.4, 0.4}),
		},
		"autumn": {
			Red:   seg([3]float64{0, 1, 1}, [3]float64{1, 1, 1}),
			Green: ramp,
			Blue:  seg([3]float64{0, 0, 0}, [3]float64{1, 0, 0}),
		},
		"winter": {
			Red:   seg([3]float64{0, 0, 0}, [3]float64{1, 0, 0}),
			Green: ramp,
			Blue:  seg([3]float64{0, 1, 1}, [3]float64{1, 0.5, 0.5}),
		},
		"hsv": {
			Red: seg([3]float64{0, 1, 1}, [3]float64{0.158730, 1, 1}, [3]float64{0.174603, 0.96875, 0.96875},
				[3]float64{0.333333, 0.03125, 0.03125}, [3]float64{0.349206, 0, 0}, [3]float64{0.666667, 0, 0},
				[3]float64{0.682540, 0.03125, 0.03125}, [3]float64{0.841270, 0.96875, 0.96875},
				[3]float64{0.857143, 1, 1}, [3]float64{1, 1, 1}),
			Green: seg([3]float64{0, 0, 0}, [3]float64{0.158730, 0.9375, 0.9375}, [3]float64{0.174603, 1, 1},
				[3]float64{0.507937, 1, 1}, [3]float64{0.666667, 0.0625, 0.0625}, [3]float64{0.682540, 0, 0},
				[3]float64{1, 0, 0}),
			Blue: seg([3]float64{0, 0, 0}, [3]float64{0.333333, 0, 0}, [3]float64{0.349206, 0.0625, 0.0625},
				[3]float64{0.507937, 1, 1}, [3]float64{0.841270, 1, 1}, [3]float64{0.857143, 0.9375, 0.9375},
				[3]float64{1, 0.09375, 0.09375}),
		},
		"prism": {Red: prism(0.25, 0.75, 0.67), Green: prism(-0.25, 0.75, 0.33), Blue: prism(0, -1.1, 0)},
		"flag":  {Red: flag(0.25, 0.75, 0.5), Green: flag(0, 1, 0), Blue: flag(-0.25, 0.75, 0.5)},
	}
}
