// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tagcodec

// Zigzag maps signed integers onto unsigned magnitudes so that values
// near zero, positive or negative, get short raw numbers:
// 0 → 0, -1 → 1, 1 → 2, -2 → 3, ...

func Zigzag16(v int16) uint16 { return uint16(v<<1) ^ uint16(v>>15) }

func Zigzag32(v int32) uint32 { return uint32(v<<1) ^ uint32(v>>31) }

func Zigzag64(v int64) uint64 { return uint64(v<<1) ^ uint64(v>>63) }

func Unzigzag16(z uint16) int16 { return int16(z>>1) ^ -int16(z&1) }

func Unzigzag32(z uint32) int32 { return int32(z>>1) ^ -int32(z&1) }

func Unzigzag64(z uint64) int64 { return int64(z>>1) ^ -int64(z&1) }
