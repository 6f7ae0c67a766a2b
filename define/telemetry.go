// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package define

import (
	"time"

	"github.com/google/uuid"
)

// SupportSampling 由可参与采样的遥测数据实现
//
// 采样决策一旦写入（SetSamplingPercentage）后续节点必须原样保留
// 即数据所携带的采样率只允许被设置一次
type SupportSampling interface {
	// SamplingPercentage 返回已写入的采样率 未写入时 ok 为 false
	SamplingPercentage() (v float64, ok bool)

	// SetSamplingPercentage 写入采样率
	SetSamplingPercentage(v float64)

	// SamplingIdentity 返回采样一致性标识
	SamplingIdentity() string
}

// OperationContext 描述遥测数据所属的逻辑操作（调用链）
type OperationContext struct {
	ID       string
	Name     string
	ParentID string
}

// Telemetry 为所有遥测数据的公共字段
type Telemetry struct {
	Timestamp  time.Time
	ItemID     string
	Operation  OperationContext
	Properties map[string]string
}

// SamplingIdentity 优先使用 Operation.ID 作为采样标识 同一操作下的所有数据
// 共享同一标识 保证跨进程决策一致；缺失时退化为 ItemID（必要时生成）
// 此时该条数据的一致性无法与其他数据关联 但绝不中断流水线
func (t *Telemetry) SamplingIdentity() string {
	if t.Operation.ID != "" {
		return t.Operation.ID
	}
	if t.ItemID == "" {
		t.ItemID = uuid.New().String()
	}
	return t.ItemID
}

// Sampleable 持有采样率记录 嵌入后即实现 SupportSampling 的读写部分
type Sampleable struct {
	percentage *float64
}

func (s *Sampleable) SamplingPercentage() (float64, bool) {
	if s.percentage == nil {
		return 0, false
	}
	return *s.percentage, true
}

func (s *Sampleable) SetSamplingPercentage(v float64) {
	s.percentage = &v
}

// RequestData 服务端请求数据
type RequestData struct {
	Telemetry
	Sampleable
	Name         string
	URL          string
	Duration     time.Duration
	ResponseCode string
	Success      bool
}

// DependencyData 外部依赖调用数据
type DependencyData struct {
	Telemetry
	Sampleable
	Name     string
	Type     string
	Target   string
	Duration time.Duration
	Success  bool
}

// EventData 自定义事件数据
type EventData struct {
	Telemetry
	Sampleable
	Name         string
	Measurements map[string]float64
}

// ExceptionData 异常数据
type ExceptionData struct {
	Telemetry
	Sampleable
	TypeName string
	Message  string
	Stack    string
}

// PageViewData 页面访问数据
type PageViewData struct {
	Telemetry
	Sampleable
	Name     string
	URL      string
	Duration time.Duration
}

// TraceData 日志消息数据
type TraceData struct {
	Telemetry
	Sampleable
	Message       string
	SeverityLevel int32
}

// MetricData 指标数据 预聚合指标不参与采样 因此不携带 Sampleable
type MetricData struct {
	Telemetry
	Name  string
	Value float64
	Count int64
}
