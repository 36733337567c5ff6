package service

import "math"

// 压力等级
const (
	StressHigh     = "High"
	StressModerate = "Moderate"
	StressLow      = "Low"
)

// DefaultMetricInputs 返回会话初始指标
func DefaultMetricInputs() MetricInputs {
	return MetricInputs{WaterGlasses: 3, SleepHours: 6.5, Mood: "neutral"}
}

// WellnessScore 按饮水、睡眠、心情与清单完成数计算健康分，不设上限。
func WellnessScore(in MetricInputs, checklist Checklist) int {
	moodPoints := 15.0
	if in.Mood == "happy" {
		moodPoints = 30
	}
	score := float64(in.WaterGlasses)/8*30 +
		in.SleepHours/8*40 +
		moodPoints +
		float64(checklist.CompletedCount()*5)
	return int(math.Round(score))
}

// StressLevel 由睡眠时长推导压力等级，区间左闭右开。
func StressLevel(sleepHours float64) string {
	switch {
	case sleepHours < 6:
		return StressHigh
	case sleepHours < 7.5:
		return StressModerate
	default:
		return StressLow
	}
}
