// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package ratesampler

import (
	"github.com/cespare/xxhash/v2"
)

// scoreBuckets 决定了分数的量化精度
const scoreBuckets = 1 << 20

// Score 将采样标识映射为 [0, 100) 区间上的分数
//
// 映射必须跨进程跨重启稳定 不允许引入任何进程内种子或随机状态
// 哈希算法的选择会影响与其他实现的采样一致性 变更等同于协议变更
func Score(identity string) float64 {
	h := xxhash.Sum64String(identity)
	return float64(h%scoreBuckets) * 100 / scoreBuckets
}
