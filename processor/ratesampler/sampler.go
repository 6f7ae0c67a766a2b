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
	"strings"

	"github.com/appmonitor/collector/define"
	"github.com/appmonitor/collector/pkg/logger"
)

// allowedTypes 为固定的类别映射表 类别集合编译期已知 构建一次后只读
var allowedTypes = map[string]define.RecordType{
	"Dependency": define.RecordDependency,
	"Event":      define.RecordEvent,
	"Exception":  define.RecordException,
	"PageView":   define.RecordPageView,
	"Request":    define.RecordRequest,
	"Trace":      define.RecordTrace,
}

// Sampler 持有解析后的采样配置 构建完成后不可变 可被并发调用
type Sampler struct {
	percentage float64
	included   map[define.RecordType]struct{}
	excluded   map[define.RecordType]struct{}
}

func NewSampler(c Config) (*Sampler, error) {
	percentage, err := c.Percentage()
	if err != nil {
		return nil, err
	}

	return &Sampler{
		percentage: percentage,
		included:   intoTypeSet(c.IncludedTypes),
		excluded:   intoTypeSet(c.ExcludedTypes),
	}, nil
}

// intoTypeSet 将配置的类别名称转换为类别集合
// 未识别或空白的名称记录日志后跳过 单个配置错误不应中断数据采集
func intoTypeSet(names []string) map[define.RecordType]struct{} {
	set := make(map[define.RecordType]struct{})
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			logger.Errorf("empty telemetry type cannot be considered")
			continue
		}
		rtype, ok := allowedTypes[name]
		if !ok {
			logger.Errorf("telemetry type '%s' is not allowed to sample", name)
			continue
		}
		set[rtype] = struct{}{}
	}
	return set
}

// Sample 返回 record 是否保留
//
// 对可采样且未决策的数据 先写入采样率再计算分数 即使数据最终被丢弃
// 中途观察到它的节点也能看到一致的采样率
func (s *Sampler) Sample(record *define.Record) bool {
	data, ok := record.Data.(define.SupportSampling)
	if !ok {
		return true
	}

	if !s.applicable(record.RecordType) {
		logger.Debugf("skip sampling since '%s' type is not sampling applicable", record.RecordType)
		return true
	}

	if v, ok := data.SamplingPercentage(); ok {
		logger.Infof("record has sampling percentage already set to %v", v)
		return true
	}

	data.SetSamplingPercentage(s.percentage)
	if Score(data.SamplingIdentity()) >= s.percentage {
		logger.Infof("record '%s' sampled out", record.RecordType)
		return false
	}
	return true
}

// applicable 判断类别是否参与采样 排除集合优先于包含集合
func (s *Sampler) applicable(rtype define.RecordType) bool {
	if len(s.excluded) > 0 {
		if _, ok := s.excluded[rtype]; ok {
			return false
		}
	}

	if len(s.included) > 0 {
		if _, ok := s.included[rtype]; !ok {
			return false
		}
	}

	return true
}
