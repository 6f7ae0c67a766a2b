// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/appmonitor/collector/confengine"
	"github.com/appmonitor/collector/define"
	"github.com/appmonitor/collector/internal/generator"
	_ "github.com/appmonitor/collector/processor/ratelimiter"
	_ "github.com/appmonitor/collector/processor/ratesampler"
)

func TestParseProcessor(t *testing.T) {
	t.Run("Invalid processor", func(t *testing.T) {
		content := `
processorx:
    - name: ""
      config:
`
		conf := confengine.MustLoadConfigContent(content)
		_, err := parseProcessors("x", conf, nil)
		assert.Error(t, err)
	})

	t.Run("Empty processor name", func(t *testing.T) {
		content := `
processor:
    - name: ""
      config:
`
		conf := confengine.MustLoadConfigContent(content)
		_, err := parseProcessors("x", conf, nil)
		assert.NoError(t, err)
	})

	t.Run("Duplicated processor", func(t *testing.T) {
		content := `
processor:
    - name: "rate_sampler/fixed"
      config:
    - name: "rate_sampler/fixed"
      config:
`
		conf := confengine.MustLoadConfigContent(content)
		ps, err := parseProcessors("x", conf, nil)
		assert.NoError(t, err)
		assert.Len(t, ps, 1)
	})

	t.Run("No exist processor", func(t *testing.T) {
		content := `
processor:
    - name: "whatever/fixed"
      config:
`
		conf := confengine.MustLoadConfigContent(content)
		ps, err := parseProcessors("x", conf, nil)
		assert.NoError(t, err)
		assert.Len(t, ps, 0)
	})

	t.Run("Invalid processor config", func(t *testing.T) {
		content := `
processor:
    - name: "rate_sampler/fixed"
      config:
        sampling_percentage: "oops"
`
		conf := confengine.MustLoadConfigContent(content)
		ps, err := parseProcessors("x", conf, nil)
		assert.NoError(t, err)
		assert.Len(t, ps, 0)
	})
}

func TestParsePipeline(t *testing.T) {
	t.Run("Invalid pipeline", func(t *testing.T) {
		content := `
pipelinex:
    - name: ""
      config:
`
		conf := confengine.MustLoadConfigContent(content)
		_, err := parsePipelines("x", conf, nil)
		assert.Error(t, err)
	})

	t.Run("Empty pipeline name", func(t *testing.T) {
		content := `
pipeline:
    - name: ""
      config:
`
		conf := confengine.MustLoadConfigContent(content)
		_, err := parsePipelines("x", conf, nil)
		assert.NoError(t, err)
	})

	t.Run("Unknown pipeline type", func(t *testing.T) {
		content := `
pipeline:
    - name: "request_pipeline/common"
      type: "undefined"
      processors:
        - "rate_limiter/token_bucket"
        - "rate_sampler/fixed"
`
		conf := confengine.MustLoadConfigContent(content)
		pls, err := parsePipelines("x", conf, nil)
		assert.NoError(t, err)
		assert.Len(t, pls, 0)
	})

	t.Run("Unknown processor", func(t *testing.T) {
		content := `
pipeline:
    - name: "request_pipeline/common"
      type: "request"
      processors:
        - "not_exists/common"
`
		conf := confengine.MustLoadConfigContent(content)
		pls, err := parsePipelines("x", conf, nil)
		assert.NoError(t, err)
		assert.Len(t, pls, 0)
	})
}

const managerContent = `
subconfigs:
  - "../example/fixtures/subconfig_*.yml"

processor:
  - name: "rate_limiter/token_bucket"
    config:
      type: token_bucket
      qps: 10000
      burst: 10000

  - name: "rate_sampler/fixed"
    config:
      sampling_percentage: "100"

pipeline:
  - name: "request_pipeline/common"
    type: "request"
    processors:
      - "rate_limiter/token_bucket"
      - "rate_sampler/fixed"

  - name: "event_pipeline/common"
    type: "event"
    processors:
      - "rate_sampler/fixed"
`

func TestManager(t *testing.T) {
	mgr, err := New(confengine.MustLoadConfigContent(managerContent))
	assert.NoError(t, err)

	pl := mgr.GetPipeline(define.RecordRequest)
	assert.NotNil(t, pl)
	assert.Equal(t, "request_pipeline/common", pl.Name())
	assert.Equal(t, define.RecordRequest, pl.RecordType())
	assert.True(t, pl.Validate())
	assert.Equal(t, []string{"rate_limiter/token_bucket", "rate_sampler/fixed"}, pl.AllProcessors())
	assert.Equal(t, []string{"rate_limiter/token_bucket"}, pl.PreCheckProcessors())
	assert.Equal(t, []string{"rate_sampler/fixed"}, pl.SchedProcessors())

	assert.NotNil(t, mgr.GetProcessor("rate_sampler/fixed"))
	assert.Nil(t, mgr.GetProcessor("not_exists"))
	assert.Nil(t, mgr.GetPipeline(define.RecordMetrics))

	assert.NotNil(t, GetDefaultGetter())
}

func TestManagerValidateFailed(t *testing.T) {
	content := `
processor:
  - name: "rate_limiter/token_bucket"
    config:
      type: noop

  - name: "rate_sampler/fixed"
    config:
      sampling_percentage: "100"

pipeline:
  - name: "request_pipeline/common"
    type: "request"
    processors:
      - "rate_sampler/fixed"
      - "rate_limiter/token_bucket"
`
	mgr, err := New(confengine.MustLoadConfigContent(content))
	assert.NoError(t, err)

	// precheck processor 位于调度类 processor 之后 流水线构建失败
	assert.Nil(t, mgr.GetPipeline(define.RecordRequest))
}

func TestManagerHandle(t *testing.T) {
	mgr, err := New(confengine.MustLoadConfigContent(managerContent))
	assert.NoError(t, err)

	t.Run("Keep", func(t *testing.T) {
		g := generator.NewTelemetryGenerator(define.TelemetryOptions{
			RecordType: define.RecordRequest,
		})
		record := g.Generate()
		assert.True(t, mgr.Handle(record))

		data := record.Data.(define.SupportSampling)
		v, ok := data.SamplingPercentage()
		assert.True(t, ok)
		assert.Equal(t, 100.0, v)
	})

	t.Run("No pipeline", func(t *testing.T) {
		g := generator.NewTelemetryGenerator(define.TelemetryOptions{
			RecordType: define.RecordMetrics,
		})
		assert.True(t, mgr.Handle(g.Generate()))
	})

	t.Run("Drop by token", func(t *testing.T) {
		// token_app1 子配置的采样率为 10 多数数据会被丢弃
		dropped := 0
		for i := 0; i < 100; i++ {
			g := generator.NewTelemetryGenerator(define.TelemetryOptions{
				GeneratorOptions: define.GeneratorOptions{Token: "token_app1"},
				RecordType:       define.RecordEvent,
			})
			if !mgr.Handle(g.Generate()) {
				dropped++
			}
		}
		assert.Greater(t, dropped, 50)
	})
}

func TestManagerReload(t *testing.T) {
	mgr, err := New(confengine.MustLoadConfigContent(managerContent))
	assert.NoError(t, err)

	content := `
processor:
  - name: "rate_sampler/fixed"
    config:
      sampling_percentage: "0"

pipeline:
  - name: "trace_pipeline/common"
    type: "trace"
    processors:
      - "rate_sampler/fixed"
`
	assert.NoError(t, mgr.Reload(confengine.MustLoadConfigContent(content)))
	assert.NotNil(t, mgr.GetPipeline(define.RecordTrace))
	assert.Nil(t, mgr.GetPipeline(define.RecordRequest))

	g := generator.NewTelemetryGenerator(define.TelemetryOptions{
		RecordType: define.RecordTrace,
	})
	assert.False(t, mgr.Handle(g.Generate()))
}

func TestSubConfigParseAndLoad(t *testing.T) {
	patterns := []string{"../example/fixtures/*.yml"}
	configs := parseProcessorSubConfigs(confengine.LoadConfigPatterns(patterns))

	processors := configs["rate_sampler/fixed"]
	assert.Len(t, processors, 4)

	defaultProcessor := processors[0]
	assert.Equal(t, "token_app1", defaultProcessor.Token)
	assert.Equal(t, define.SubConfigFieldDefault, defaultProcessor.Type)
	assert.Equal(t, "10", defaultProcessor.Config.Config["sampling_percentage"])

	serviceProcessor := processors[1]
	assert.Equal(t, define.SubConfigFieldService, serviceProcessor.Type)
	assert.Equal(t, "backend", serviceProcessor.ID)

	instanceProcessor := processors[2]
	assert.Equal(t, define.SubConfigFieldInstance, instanceProcessor.Type)
	assert.Equal(t, "backend-0", instanceProcessor.ID)

	limiters := configs["rate_limiter/token_bucket"]
	assert.Len(t, limiters, 1)
	assert.Equal(t, "token_app2", limiters[0].Token)
}
