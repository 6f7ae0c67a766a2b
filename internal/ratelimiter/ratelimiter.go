// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package ratelimiter

import (
	"k8s.io/client-go/util/flowcontrol"
)

const (
	TypeNoop        = "noop"
	TypeTokenBucket = "token_bucket"
)

// RateLimiter 流控器抽象
type RateLimiter interface {
	// Type 返回流控器类型
	Type() string

	// TryAccept 返回是否允许请求通过
	TryAccept() bool

	// QPS 返回流控器 QPS
	QPS() float32

	// Stop 停止流控器
	Stop()
}

// New 根据类型生成 RateLimiter 实例 未知类型一律视为 noop
func New(typ string, qps float32, burst int) RateLimiter {
	switch typ {
	case TypeTokenBucket:
		return NewTokenBucketRateLimiter(qps, burst)
	}
	return NewNoopRateLimiter()
}

type tokenBucketRateLimiter struct {
	fc flowcontrol.RateLimiter
}

// NewTokenBucketRateLimiter 生成令牌桶流控器
func NewTokenBucketRateLimiter(qps float32, burst int) RateLimiter {
	return &tokenBucketRateLimiter{
		fc: flowcontrol.NewTokenBucketRateLimiter(qps, burst),
	}
}

func (rl *tokenBucketRateLimiter) Type() string {
	return TypeTokenBucket
}

func (rl *tokenBucketRateLimiter) TryAccept() bool {
	return rl.fc.TryAccept()
}

func (rl *tokenBucketRateLimiter) QPS() float32 {
	return rl.fc.QPS()
}

func (rl *tokenBucketRateLimiter) Stop() {
	rl.fc.Stop()
}

type noopRateLimiter struct{}

// NewNoopRateLimiter 生成空流控器 放行所有请求
func NewNoopRateLimiter() RateLimiter {
	return noopRateLimiter{}
}

func (noopRateLimiter) Type() string    { return TypeNoop }
func (noopRateLimiter) TryAccept() bool { return true }
func (noopRateLimiter) QPS() float32    { return 0 }
func (noopRateLimiter) Stop()           {}
