// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package generator

import (
	"time"

	"github.com/appmonitor/collector/define"
	"github.com/appmonitor/collector/internal/random"
)

// TelemetryGenerator 按照指定选项生成遥测数据 仅用于测试和基准场景
type TelemetryGenerator struct {
	opts define.TelemetryOptions
}

func NewTelemetryGenerator(opts define.TelemetryOptions) *TelemetryGenerator {
	return &TelemetryGenerator{opts: opts}
}

func (g *TelemetryGenerator) base() define.Telemetry {
	return define.Telemetry{
		Timestamp:  time.Now(),
		Operation:  define.OperationContext{ID: g.opts.OperationID},
		Properties: g.opts.Properties,
	}
}

func (g *TelemetryGenerator) sampleable() define.Sampleable {
	var s define.Sampleable
	if g.opts.SamplingPercentage != nil {
		s.SetSamplingPercentage(*g.opts.SamplingPercentage)
	}
	return s
}

// Generate 生成一条 Record 数据内容取决于 opts.RecordType
func (g *TelemetryGenerator) Generate() *define.Record {
	var data interface{}
	switch g.opts.RecordType {
	case define.RecordRequest:
		data = &define.RequestData{
			Telemetry:    g.base(),
			Sampleable:   g.sampleable(),
			Name:         "GET /" + random.String(8),
			Duration:     g.opts.Duration,
			ResponseCode: "200",
			Success:      true,
		}
	case define.RecordDependency:
		data = &define.DependencyData{
			Telemetry:  g.base(),
			Sampleable: g.sampleable(),
			Name:       random.String(8),
			Type:       "SQL",
			Target:     random.String(12),
			Duration:   g.opts.Duration,
			Success:    true,
		}
	case define.RecordEvent:
		data = &define.EventData{
			Telemetry:  g.base(),
			Sampleable: g.sampleable(),
			Name:       random.String(8),
		}
	case define.RecordException:
		data = &define.ExceptionData{
			Telemetry:  g.base(),
			Sampleable: g.sampleable(),
			TypeName:   "RuntimeError",
			Message:    random.String(24),
		}
	case define.RecordPageView:
		data = &define.PageViewData{
			Telemetry:  g.base(),
			Sampleable: g.sampleable(),
			Name:       random.String(8),
			Duration:   g.opts.Duration,
		}
	case define.RecordTrace:
		data = &define.TraceData{
			Telemetry:  g.base(),
			Sampleable: g.sampleable(),
			Message:    random.String(24),
		}
	case define.RecordMetrics:
		data = &define.MetricData{
			Telemetry: g.base(),
			Name:      random.String(8),
			Value:     1.0,
			Count:     1,
		}
	}

	return &define.Record{
		RecordType: g.opts.RecordType,
		Token:      define.Token{Original: g.opts.Token},
		Data:       data,
	}
}
