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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntoRecordType(t *testing.T) {
	tests := []struct {
		input string
		want  RecordType
	}{
		{"request", RecordRequest},
		{"dependency", RecordDependency},
		{"event", RecordEvent},
		{"exception", RecordException},
		{"pageview", RecordPageView},
		{"trace", RecordTrace},
		{"metrics", RecordMetrics},
		{"Request", RecordUndefined},
		{"", RecordUndefined},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IntoRecordType(tt.input))
	}
}

func TestSamplingIdentityOperation(t *testing.T) {
	data := &TraceData{Message: "log message"}
	data.Operation.ID = "op-123"
	assert.Equal(t, "op-123", data.SamplingIdentity())
	assert.Equal(t, "op-123", data.SamplingIdentity())
}

func TestSamplingIdentityFallback(t *testing.T) {
	data := &TraceData{Message: "log message"}

	id := data.SamplingIdentity()
	assert.NotEmpty(t, id)
	// 同一实例重复取值保持稳定
	assert.Equal(t, id, data.SamplingIdentity())

	other := &TraceData{Message: "log message"}
	assert.NotEqual(t, id, other.SamplingIdentity())
}

func TestSampleablePercentage(t *testing.T) {
	var s Sampleable
	_, ok := s.SamplingPercentage()
	assert.False(t, ok)

	s.SetSamplingPercentage(50.0)
	v, ok := s.SamplingPercentage()
	assert.True(t, ok)
	assert.Equal(t, 50.0, v)
}

func TestSupportSamplingImpls(t *testing.T) {
	items := []interface{}{
		&RequestData{},
		&DependencyData{},
		&EventData{},
		&ExceptionData{},
		&PageViewData{},
		&TraceData{},
	}
	for _, item := range items {
		_, ok := item.(SupportSampling)
		assert.True(t, ok)
	}

	// 指标数据不支持采样
	_, ok := interface{}(&MetricData{}).(SupportSampling)
	assert.False(t, ok)
}
