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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/appmonitor/collector/define"
	"github.com/appmonitor/collector/internal/generator"
	"github.com/appmonitor/collector/internal/random"
	"github.com/appmonitor/collector/internal/testkits"
)

func makeRecord(rtype define.RecordType, operationID string) *define.Record {
	g := generator.NewTelemetryGenerator(define.TelemetryOptions{
		GeneratorOptions: define.GeneratorOptions{
			OperationID: operationID,
			Properties:  random.Properties(2),
		},
		RecordType: rtype,
	})
	return g.Generate()
}

func mustSampler(t *testing.T, c Config) *Sampler {
	sampler, err := NewSampler(c)
	assert.NoError(t, err)
	return sampler
}

func TestSamplerInvalidPercentage(t *testing.T) {
	_, err := NewSampler(Config{SamplingPercentage: "fifty"})
	assert.Error(t, err)
}

func TestSamplerDefaultPercentage(t *testing.T) {
	sampler := mustSampler(t, Config{})
	assert.Equal(t, 100.0, sampler.percentage)

	// 默认配置下全量保留
	for i := 0; i < 100; i++ {
		record := makeRecord(define.RecordTrace, "")
		assert.True(t, sampler.Sample(record))
	}
}

func TestSamplerDeterministic(t *testing.T) {
	sampler := mustSampler(t, Config{SamplingPercentage: "50"})

	operationID := random.OperationID()
	first := sampler.Sample(makeRecord(define.RecordRequest, operationID))
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, sampler.Sample(makeRecord(define.RecordRequest, operationID)))
	}

	// 同一 operation 下不同类别的数据共享同一决策
	assert.Equal(t, first, sampler.Sample(makeRecord(define.RecordDependency, operationID)))
	assert.Equal(t, first, sampler.Sample(makeRecord(define.RecordException, operationID)))
}

func TestSamplerWritesPercentageBeforeDecision(t *testing.T) {
	sampler := mustSampler(t, Config{SamplingPercentage: "50"})

	record := makeRecord(define.RecordRequest, "op-123")
	kept := sampler.Sample(record)
	assert.Equal(t, Score("op-123") < 50, kept)
	testkits.AssertSamplingPercentage(t, record, 50.0)
}

func TestSamplerRespectsPriorDecision(t *testing.T) {
	sampler := mustSampler(t, Config{SamplingPercentage: "0"})

	prior := 75.0
	g := generator.NewTelemetryGenerator(define.TelemetryOptions{
		RecordType:         define.RecordRequest,
		SamplingPercentage: &prior,
	})
	record := g.Generate()

	// 已有采样决策的数据直接放行 且采样率不被覆盖
	assert.True(t, sampler.Sample(record))
	testkits.AssertSamplingPercentage(t, record, 75.0)
}

func TestSamplerExcludedTypes(t *testing.T) {
	sampler := mustSampler(t, Config{
		SamplingPercentage: "0",
		ExcludedTypes:      []string{"Trace"},
	})

	record := makeRecord(define.RecordTrace, "op-123")
	assert.True(t, sampler.Sample(record))
	testkits.AssertSamplingPercentageUnset(t, record)

	assert.False(t, sampler.Sample(makeRecord(define.RecordRequest, "op-123")))
}

func TestSamplerIncludedTypes(t *testing.T) {
	sampler := mustSampler(t, Config{
		SamplingPercentage: "0",
		IncludedTypes:      []string{"Request"},
	})

	assert.False(t, sampler.Sample(makeRecord(define.RecordRequest, "op-123")))

	record := makeRecord(define.RecordEvent, "op-123")
	assert.True(t, sampler.Sample(record))
	testkits.AssertSamplingPercentageUnset(t, record)
}

func TestSamplerExcludedWinsOverIncluded(t *testing.T) {
	sampler := mustSampler(t, Config{
		SamplingPercentage: "0",
		IncludedTypes:      []string{"Request"},
		ExcludedTypes:      []string{"Request"},
	})

	record := makeRecord(define.RecordRequest, "op-123")
	assert.True(t, sampler.Sample(record))
	testkits.AssertSamplingPercentageUnset(t, record)
}

func TestSamplerUnknownTypeNames(t *testing.T) {
	// 未识别或空白的类别名称被忽略 不影响其余配置
	sampler := mustSampler(t, Config{
		SamplingPercentage: "0",
		IncludedTypes:      []string{"Request", "NotAType", "  ", ""},
	})

	assert.Len(t, sampler.included, 1)
	assert.False(t, sampler.Sample(makeRecord(define.RecordRequest, "op-123")))
	assert.True(t, sampler.Sample(makeRecord(define.RecordEvent, "op-123")))
}

func TestSamplerCaseSensitiveTypeNames(t *testing.T) {
	sampler := mustSampler(t, Config{
		SamplingPercentage: "0",
		IncludedTypes:      []string{"request", "REQUEST"},
	})

	// 大小写不匹配时集合为空 等价于无包含过滤
	assert.Len(t, sampler.included, 0)
	assert.False(t, sampler.Sample(makeRecord(define.RecordRequest, "op-123")))
}

func TestSamplerNonSampleableData(t *testing.T) {
	sampler := mustSampler(t, Config{SamplingPercentage: "0"})
	assert.True(t, sampler.Sample(makeRecord(define.RecordMetrics, "op-123")))
}

func TestSamplerBoundaryScore(t *testing.T) {
	identity := "op-123"
	score := Score(identity)

	// 分数恰好等于采样率时丢弃
	sampler := mustSampler(t, Config{})
	sampler.percentage = score
	assert.False(t, sampler.Sample(makeRecord(define.RecordRequest, identity)))
}

func TestSamplerIdentityFallback(t *testing.T) {
	sampler := mustSampler(t, Config{SamplingPercentage: "50"})

	// 无 operation 的数据回退到随机标识 多条数据的决策相互独立
	// 但单条数据的标识一经生成即保持稳定
	record := makeRecord(define.RecordEvent, "")
	data := record.Data.(define.SupportSampling)
	id1 := data.SamplingIdentity()
	id2 := data.SamplingIdentity()
	assert.NotEmpty(t, id1)
	assert.Equal(t, id1, id2)

	kept := sampler.Sample(record)
	assert.Equal(t, Score(id1) < 50, kept)
}

func TestSamplerApproximateRate(t *testing.T) {
	sampler := mustSampler(t, Config{SamplingPercentage: "50"})

	kept := 0
	const total = 2000
	for i := 0; i < total; i++ {
		if sampler.Sample(makeRecord(define.RecordRequest, "")) {
			kept++
		}
	}
	assert.Greater(t, kept, total*4/10)
	assert.Less(t, kept, total*6/10)
}
