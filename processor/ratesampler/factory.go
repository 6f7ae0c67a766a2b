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
	"github.com/appmonitor/collector/confengine"
	"github.com/appmonitor/collector/define"
	"github.com/appmonitor/collector/internal/mapstructure"
	"github.com/appmonitor/collector/pkg/logger"
	"github.com/appmonitor/collector/processor"
)

func init() {
	processor.Register(define.ProcessorRateSampler, NewFactory)
}

func NewFactory(conf map[string]interface{}, customized []processor.SubConfigProcessor) (processor.Processor, error) {
	return newFactory(conf, customized)
}

func newFactory(conf map[string]interface{}, customized []processor.SubConfigProcessor) (*rateSampler, error) {
	configs := confengine.NewTierConfig()
	samplers := confengine.NewTierConfig()

	var c Config
	if err := mapstructure.Decode(conf, &c); err != nil {
		return nil, err
	}
	sampler, err := NewSampler(c)
	if err != nil {
		return nil, err
	}
	configs.SetGlobal(c)
	samplers.SetGlobal(sampler)

	for _, custom := range customized {
		var cfg Config
		if err := mapstructure.Decode(custom.Config.Config, &cfg); err != nil {
			logger.Errorf("failed to decode config: %v", err)
			continue
		}
		smp, err := NewSampler(cfg)
		if err != nil {
			logger.Errorf("invalid config: %v", err)
			continue
		}
		configs.Set(custom.Token, custom.Type, custom.ID, cfg)
		samplers.Set(custom.Token, custom.Type, custom.ID, smp)
	}

	return &rateSampler{
		CommonProcessor: processor.NewCommonProcessor(conf, customized),
		configs:         configs,
		samplers:        samplers,
	}, nil
}

type rateSampler struct {
	processor.CommonProcessor
	configs  *confengine.TierConfig // type: Config
	samplers *confengine.TierConfig // type: *Sampler
}

func (p *rateSampler) Name() string {
	return define.ProcessorRateSampler
}

func (p *rateSampler) IsDerived() bool {
	return false
}

func (p *rateSampler) IsPreCheck() bool {
	return false
}

func (p *rateSampler) Reload(config map[string]interface{}, customized []processor.SubConfigProcessor) {
	f, err := newFactory(config, customized)
	if err != nil {
		logger.Errorf("failed to reload processor: %v", err)
		return
	}

	p.CommonProcessor = f.CommonProcessor
	p.configs = f.configs
	p.samplers = f.samplers
}

func (p *rateSampler) Process(record *define.Record) (*define.Record, error) {
	sampler := p.samplers.GetByToken(record.Token.Original).(*Sampler)
	if !sampler.Sample(record) {
		return nil, define.ErrEndOfPipeline
	}
	return nil, nil
}
