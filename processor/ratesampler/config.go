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
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

const defaultSamplingPercentage = 100.0

type Config struct {
	// SamplingPercentage 以字符串形式接收 解析失败属于配置错误 启动即失败
	SamplingPercentage string   `config:"sampling_percentage" mapstructure:"sampling_percentage"`
	IncludedTypes      []string `config:"included_types" mapstructure:"included_types"`
	ExcludedTypes      []string `config:"excluded_types" mapstructure:"excluded_types"`
}

// Percentage 解析配置的采样率 空值取默认值 100（全量保留）
func (c Config) Percentage() (float64, error) {
	if c.SamplingPercentage == "" {
		return defaultSamplingPercentage, nil
	}

	v, err := cast.ToFloat64E(c.SamplingPercentage)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid sampling_percentage '%s'", c.SamplingPercentage)
	}
	return v, nil
}
