package renderer

import "sync/atomic"

// NewPercentProgress adapts a per-pixel ProgressFunc into whole-percent
// reports. report is called at most once per percent value and may be
// called from any worker goroutine.
func NewPercentProgress(totalPixels int, report func(percent int)) ProgressFunc {
	var completed int64
	var lastPercent int64 = -1

	return func(pixel int) {
		if totalPixels <= 0 {
			return
		}
		done := atomic.AddInt64(&completed, 1)
		percent := done * 100 / int64(totalPixels)
		for {
			last := atomic.LoadInt64(&lastPercent)
			if percent <= last {
				return
			}
			if atomic.CompareAndSwapInt64(&lastPercent, last, percent) {
				report(int(percent))
				return
			}
		}
	}
}
