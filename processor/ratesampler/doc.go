// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

/*
# RateSampler: 固定比率一致性采样器

processor:
  - name: "rate_sampler/fixed"
    config:
      # 采样率 表示数据保留的百分比 建议取 100/N（N 为正整数）
      # 如 50 表示 1/2、33.33 表示 1/3 否则后端按采样率还原计数时会产生偏差
      sampling_percentage: "50"

      # 参与采样的类别 为空表示不限制
      # 可选值 Dependency/Event/Exception/PageView/Request/Trace
      included_types:
        - "Request"
        - "Trace"

      # 不参与采样的类别 优先级高于 included_types
      excluded_types:
        - "Event"

采样决策不使用随机数 而是将数据的采样标识（操作 ID）哈希映射为
[0, 100) 区间上的分数 与采样率比较 分数大于等于采样率则丢弃
同一操作下的所有数据在任意进程任意阶段得到相同的保留/丢弃结果

已携带采样率的数据视为上游已做出决策 原样放行 绝不重新计算
*/

package ratesampler
