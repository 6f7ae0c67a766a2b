// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/appmonitor/collector/confengine"
	"github.com/appmonitor/collector/pipeline"
	"github.com/appmonitor/collector/pkg/logger"
	_ "github.com/appmonitor/collector/processor/ratelimiter"
	_ "github.com/appmonitor/collector/processor/ratesampler"
)

var (
	version   = "unknown.version"
	gitHash   = "unknown.gitHash"
	buildTime = "unknown.buildTime"
)

const configFieldLogger = "logger"

func setupLogger(conf *confengine.Config) {
	var opts logger.Options
	if conf.Has(configFieldLogger) {
		if err := conf.UnpackChild(configFieldLogger, &opts); err != nil {
			fmt.Fprintf(os.Stderr, "unpack logger config failed: %v\n", err)
		}
	}
	logger.SetOptions(opts)
}

func main() {
	path := flag.String("config", "./collector.yml", "configuration filepath")
	v := flag.Bool("version", false, "display version")
	flag.Parse()

	if *v {
		fmt.Println("Version:", version)
		fmt.Println("GitHash:", gitHash)
		fmt.Println("BuildTime:", buildTime)
		return
	}

	config, err := confengine.LoadConfigPath(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	setupLogger(config)

	mgr, err := pipeline.New(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create pipeline manager failed: %v\n", err)
		os.Exit(1)
	}
	logger.Infof("collector started, config=%s", *path)

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	for sig := range c {
		if sig != syscall.SIGHUP {
			break
		}

		// SIGHUP 触发配置热更新
		config, err := confengine.LoadConfigPath(*path)
		if err != nil {
			logger.Errorf("reload config failed: %v", err)
			continue
		}
		setupLogger(config)
		if err := mgr.Reload(config); err != nil {
			logger.Errorf("reload pipeline manager failed: %v", err)
		}
	}
	logger.Infof("collector stopped")
}
