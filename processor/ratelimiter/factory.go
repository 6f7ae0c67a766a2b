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
	"github.com/pkg/errors"

	"github.com/appmonitor/collector/confengine"
	"github.com/appmonitor/collector/define"
	"github.com/appmonitor/collector/internal/mapstructure"
	"github.com/appmonitor/collector/internal/ratelimiter"
	"github.com/appmonitor/collector/pkg/logger"
	"github.com/appmonitor/collector/processor"
)

func init() {
	processor.Register(define.ProcessorRateLimiter, NewFactory)
}

func NewFactory(conf map[string]interface{}, customized []processor.SubConfigProcessor) (processor.Processor, error) {
	return newFactory(conf, customized)
}

func newFactory(conf map[string]interface{}, customized []processor.SubConfigProcessor) (*rateLimiter, error) {
	configs := confengine.NewTierConfig()
	limiters := confengine.NewTierConfig()

	var c Config
	if err := mapstructure.Decode(conf, &c); err != nil {
		return nil, err
	}
	configs.SetGlobal(c)
	limiters.SetGlobal(ratelimiter.New(c.Type, c.QPS, c.Burst))

	for _, custom := range customized {
		var cfg Config
		if err := mapstructure.Decode(custom.Config.Config, &cfg); err != nil {
			logger.Errorf("failed to decode config: %v", err)
			continue
		}
		configs.Set(custom.Token, custom.Type, custom.ID, cfg)
		limiters.Set(custom.Token, custom.Type, custom.ID, ratelimiter.New(cfg.Type, cfg.QPS, cfg.Burst))
	}

	return &rateLimiter{
		CommonProcessor: processor.NewCommonProcessor(conf, customized),
		configs:         configs,
		limiters:        limiters,
	}, nil
}

type rateLimiter struct {
	processor.CommonProcessor
	configs  *confengine.TierConfig // type: Config
	limiters *confengine.TierConfig // type: ratelimiter.RateLimiter
}

func (p *rateLimiter) Name() string {
	return define.ProcessorRateLimiter
}

func (p *rateLimiter) IsDerived() bool {
	return false
}

func (p *rateLimiter) IsPreCheck() bool {
	return true
}

func (p *rateLimiter) Clean() {
	for _, obj := range p.limiters.All() {
		obj.(ratelimiter.RateLimiter).Stop()
	}
}

func (p *rateLimiter) Reload(config map[string]interface{}, customized []processor.SubConfigProcessor) {
	f, err := newFactory(config, customized)
	if err != nil {
		logger.Errorf("failed to reload processor: %v", err)
		return
	}

	p.Clean()
	p.CommonProcessor = f.CommonProcessor
	p.configs = f.configs
	p.limiters = f.limiters
}

func (p *rateLimiter) Process(record *define.Record) (*define.Record, error) {
	limiter := p.limiters.GetByToken(record.Token.Original).(ratelimiter.RateLimiter)
	if !limiter.TryAccept() {
		return nil, errors.Errorf("rejected by %s ratelimiter, token=%s, qps=%v", limiter.Type(), record.Token.Original, limiter.QPS())
	}
	return nil, nil
}
