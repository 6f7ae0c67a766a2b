// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package define

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ErrEndOfPipeline 表示 Record 已在当前节点被消费 流水线无需继续处理（并非异常）
	ErrEndOfPipeline = errors.New("end of pipeline")

	// ErrSkipEmptyRecord 表示 Record 数据为空 跳过后续处理
	ErrSkipEmptyRecord = errors.New("skip empty record")

	// ErrUnknownRecordType 表示 Record 数据类型与声明类型不符
	ErrUnknownRecordType = errors.New("unknown record type")
)

type RequestClient struct {
	IP string
}

// Record 是 Processor 链传输的数据类型
type Record struct {
	RecordType    RecordType
	RequestType   RequestType
	RequestClient RequestClient
	Token         Token
	Metadata      map[string]string
	Data          interface{}
}

// Token 描述了 Record 归属应用的必要信息
type Token struct {
	Type     string `config:"type"`
	Original string `config:"token"`
	AppName  string `config:"app_name"`
	DataId   int32  `config:"dataid"`
}

var tokenInfo = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: MonitoringNamespace,
		Name:      "token_info",
		Help:      "Decoded token info",
	},
	[]string{"token", "dataid", "app_name"},
)

func SetTokenInfo(token Token) {
	tokenInfo.WithLabelValues(
		token.Original,
		fmt.Sprintf("%d", token.DataId),
		token.AppName,
	).Set(1)
}
