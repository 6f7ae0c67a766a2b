// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

/*
# RateLimiter: 流控处理器

processor:
  - name: "rate_limiter/token_bucket"
    config:
      type: token_bucket
      qps: 2000
      burst: 4000

rate_limiter 属于预处理类型 在数据进入流水线前执行
请求被流控拒绝时返回错误 数据不再进入后续处理器
*/

package ratelimiter
