package flake

import "github.com/CartoonFan/flake/frame"

// minStereoBlockSize is the smallest block size stereo decorrelation is
// attempted for; at or below it, the caller must fall back to independent
// left/right. Grounded on libflake/encode.c's channel_decorrelation bail-out
// for blocksize <= 32.
const minStereoBlockSize = 32

// estimateChannelCost estimates a channel's Rice coding cost using the same
// order-2 fixed-residual-sum proxy as the fixed-order estimator, cheap enough
// to run for all four candidate stereo assignments per block. Grounded on
// libflake/encode.c's calc_decorr_scores.
func estimateChannelCost(samples []int32) uint64 {
	return fixedResidualSum(samples, 2)
}

// stereoTransform derives mid and side channels from left/right. side must
// be computed before mid so that mid's sum reads the original (not yet
// overwritten) left and right, matching libflake/encode.c's
// channel_decorrelation.
func stereoTransform(left, right []int32) (mid, side []int32) {
	n := len(left)
	mid = make([]int32, n)
	side = make([]int32, n)
	for i := 0; i < n; i++ {
		side[i] = left[i] - right[i]
		mid[i] = (left[i] + right[i]) >> 1
	}
	return mid, side
}

// stereoDecorrelate chooses a channel assignment for a stereo block and
// returns the subframe input samples to encode under it, in subframe order.
// Under StereoIndependent it always keeps left/right independent. Under
// StereoEstimate it picks the cheapest of LR, LeftSide, RightSide and
// MidSide by summed per-channel cost estimate.
func stereoDecorrelate(left, right []int32, method StereoMethod) (frame.Channels, [][]int32) {
	if method != StereoEstimate {
		return frame.ChannelsLR, [][]int32{left, right}
	}

	mid, side := stereoTransform(left, right)
	costL := estimateChannelCost(left)
	costR := estimateChannelCost(right)
	costM := estimateChannelCost(mid)
	costS := estimateChannelCost(side)

	best := frame.ChannelsLR
	bestCost := costL + costR
	if c := costL + costS; c < bestCost {
		best, bestCost = frame.ChannelsLeftSide, c
	}
	if c := costR + costS; c < bestCost {
		best, bestCost = frame.ChannelsRightSide, c
	}
	if c := costM + costS; c < bestCost {
		best, bestCost = frame.ChannelsMidSide, c
	}

	switch best {
	case frame.ChannelsLeftSide:
		return best, [][]int32{left, side}
	case frame.ChannelsRightSide:
		return best, [][]int32{side, right}
	case frame.ChannelsMidSide:
		return best, [][]int32{mid, side}
	default:
		return best, [][]int32{left, right}
	}
}
