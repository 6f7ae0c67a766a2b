// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package testkits

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/appmonitor/collector/define"
	"github.com/appmonitor/collector/processor"
)

func MustProcess(t *testing.T, f processor.Processor, r define.Record) {
	_, err := f.Process(&r)
	assert.NoError(t, err)
}

// AssertSamplingPercentage 断言数据已写入指定采样率
func AssertSamplingPercentage(t *testing.T, record *define.Record, percentage float64) {
	data, ok := record.Data.(define.SupportSampling)
	assert.True(t, ok)

	v, ok := data.SamplingPercentage()
	assert.True(t, ok)
	assert.Equal(t, percentage, v)
}

// AssertSamplingPercentageUnset 断言数据未写入采样率
func AssertSamplingPercentageUnset(t *testing.T, record *define.Record) {
	data, ok := record.Data.(define.SupportSampling)
	assert.True(t, ok)

	_, ok = data.SamplingPercentage()
	assert.False(t, ok)
}
