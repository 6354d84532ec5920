/**
 * Copyright 2024 Confluent Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package avrobinary

// ZigZag maps signed integers onto unsigned ones so that values of small
// magnitude land near zero before varint encoding: 0→0, -1→1, 1→2, -2→3.

// ZigZagInt encodes a 32-bit signed integer.
func ZigZagInt(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31))
}

// UnZigZagInt inverts ZigZagInt.
func UnZigZagInt(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}

// ZigZagLong encodes a 64-bit signed integer.
func ZigZagLong(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// UnZigZagLong inverts ZigZagLong.
func UnZigZagLong(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}
