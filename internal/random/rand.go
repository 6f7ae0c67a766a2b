// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package random

import (
	"math/rand"

	"github.com/google/uuid"
)

// String 随机生成指定长度的字符串
func String(n int) string {
	letterRunes := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ._")

	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rand.Intn(len(letterRunes))]
	}
	return string(b)
}

// Properties 随机生成指定长度的属性集
func Properties(n int) map[string]string {
	props := make(map[string]string)
	for i := 0; i < n; i++ {
		props[String(12)] = String(24)
	}
	return props
}

// OperationID 随机生成操作标识
func OperationID() string {
	return uuid.New().String()
}

// Token 随机生成 Token
func Token() string {
	return String(32)
}
