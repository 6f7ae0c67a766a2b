// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package define

const (
	MonitoringNamespace = "appmonitor_collector"

	ProcessorRateSampler = "rate_sampler"
	ProcessorRateLimiter = "rate_limiter"
)

const (
	SubConfigFieldDefault  = "default"
	SubConfigFieldService  = "service"
	SubConfigFieldInstance = "instance"
)

const (
	ConfigTypeSubConfig = "subconfig"

	ConfigFieldProcessor  = "processor"
	ConfigFieldPipeline   = "pipeline"
	ConfigFieldSubConfigs = "subconfigs"
)

// StatusCode 预处理校验结果状态码
type StatusCode int

const (
	StatusCodeOK StatusCode = iota
	StatusBadRequest
	StatusCodeUnauthorized
	StatusCodeTooManyRequests
)

// PreCheckValidateFunc 预处理校验函数签名
type PreCheckValidateFunc func(*Record) (StatusCode, string, error)

// RecordType 标识流水线传输的遥测数据类型
type RecordType string

func (r RecordType) S() string { return string(r) }

const (
	RecordUndefined  RecordType = "undefined"
	RecordRequest    RecordType = "request"
	RecordDependency RecordType = "dependency"
	RecordEvent      RecordType = "event"
	RecordException  RecordType = "exception"
	RecordPageView   RecordType = "pageview"
	RecordTrace      RecordType = "trace"
	RecordMetrics    RecordType = "metrics"
)

// IntoRecordType 将字符串描述转换为 RecordType
func IntoRecordType(s string) RecordType {
	switch s {
	case RecordRequest.S():
		return RecordRequest
	case RecordDependency.S():
		return RecordDependency
	case RecordEvent.S():
		return RecordEvent
	case RecordException.S():
		return RecordException
	case RecordPageView.S():
		return RecordPageView
	case RecordTrace.S():
		return RecordTrace
	case RecordMetrics.S():
		return RecordMetrics
	}
	return RecordUndefined
}

// RequestType 标记请求类型：Http、Grpc 用于后续做统计
type RequestType string

func (r RequestType) S() string { return string(r) }

const (
	RequestHttp    RequestType = "http"
	RequestGrpc    RequestType = "grpc"
	RequestDerived RequestType = "derived"
)
