// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package pipeline

import (
	"github.com/pkg/errors"

	"github.com/appmonitor/collector/confengine"
	"github.com/appmonitor/collector/define"
	"github.com/appmonitor/collector/pkg/logger"
	"github.com/appmonitor/collector/processor"
)

// parseProcessors 解析 Processors 配置
func parseProcessors(typ string, conf *confengine.Config, subConfigs map[string][]processor.SubConfigProcessor) (map[string]processor.Instance, error) {
	var processorConfigs processor.Configs
	if err := conf.UnpackChild(define.ConfigFieldProcessor, &processorConfigs); err != nil {
		return nil, err
	}

	for i := 0; i < len(processorConfigs); i++ {
		pcf := processorConfigs[i]
		logger.Debugf("%s processor config: %+v", typ, pcf)
	}

	processors := map[string]processor.Instance{}
	for i := 0; i < len(processorConfigs); i++ {
		cfg := processorConfigs[i]
		if cfg.Name == "" {
			logger.Errorf("empty processor name is illegal: %+v", cfg)
			continue
		}
		if _, ok := processors[cfg.Name]; ok {
			logger.Errorf("duplicated processor name: %v", cfg.Name)
			continue
		}

		createFunc := processor.GetProcessorCreator(cfg.Name)
		if createFunc == nil {
			logger.Errorf("unknown processor type: %v", cfg.Name)
			continue
		}

		p, err := createFunc(cfg.Config, subConfigs[cfg.Name])
		if err != nil {
			logger.Errorf("failed to create processor instance %+v: %v", cfg, err)
			continue
		}
		processors[cfg.Name] = processor.NewInstance(cfg.Name, p)
	}
	return processors, nil
}

// parsePipelines 解析 pipelines 配置
func parsePipelines(typ string, conf *confengine.Config, processors map[string]processor.Instance) (map[define.RecordType]Pipeline, error) {
	var pipelineConf PipelineConfigs
	if err := conf.UnpackChild(define.ConfigFieldPipeline, &pipelineConf); err != nil {
		return nil, err
	}
	for _, pcf := range pipelineConf {
		logger.Infof("%s pipeline config: %+v", typ, pcf)
	}

	pipelines := map[define.RecordType]Pipeline{}
	for i := 0; i < len(pipelineConf); i++ {
		plc := pipelineConf[i]
		if plc.Name == "" {
			logger.Errorf("empty pipeline name is illegal: %+v", plc)
			continue
		}

		// 每个数据类型只能有唯一 pipeline
		rtype := define.IntoRecordType(plc.Type)
		if _, ok := pipelines[rtype]; ok {
			logger.Errorf("duplicated pipeline type: %+v", rtype)
			continue
		}

		var instances []processor.Instance
		for _, name := range plc.Processors {
			if rtype == define.RecordUndefined {
				logger.Errorf("unknown record type: %v", plc.Type)
				break
			}
			p, ok := processors[name]
			if !ok {
				logger.Errorf("unknown processor: %v", name)
				break
			}
			instances = append(instances, processor.NewInstance(name, p))
		}

		// 在一条 pipeline 中如果有某个节点处理出现问题 则整条流水线构建失败
		if len(instances) != len(plc.Processors) {
			DefaultMetricMonitor.IncBuiltFailedCounter(plc.Name, plc.Type)
			logger.Errorf("build pipeline %s failed", plc.Name)
			continue
		}

		pl := NewPipeline(plc.Name, rtype, instances...)
		// 校验 pipeline 配置，precheck processor 要位于 sched processor 之前
		if !pl.Validate() {
			DefaultMetricMonitor.IncBuiltFailedCounter(plc.Name, plc.Type)
			logger.Errorf("validate pipeline %s failed", plc.Name)
			continue
		}
		DefaultMetricMonitor.IncBuiltSuccessCounter(plc.Name, plc.Type)
		logger.Infof("build pipeline %v", pl)
		pipelines[rtype] = pl
	}
	return pipelines, nil
}

// parseProcessorSubConfigs 解析 processor 子配置
func parseProcessorSubConfigs(configs []*confengine.Config) map[string][]processor.SubConfigProcessor {
	ps := make(map[string][]processor.SubConfigProcessor)
	for _, c := range configs {
		var subConf processor.SubConfig
		if err := c.Unpack(&subConf); err != nil {
			logger.Errorf("failed to unpack subconfig, err: %v", err)
			continue
		}
		if subConf.Type != define.ConfigTypeSubConfig {
			continue
		}
		if subConf.Token == "" {
			logger.Warnf("ignore empty token in subconfig: %+v", subConf)
			continue
		}

		for _, p := range subConf.Default.Processor {
			ps[p.Name] = append(ps[p.Name], processor.SubConfigProcessor{
				Token:  subConf.Token,
				Type:   define.SubConfigFieldDefault,
				Config: p,
			})
		}
		for _, srv := range subConf.Service {
			for _, s := range srv.Processor {
				ps[s.Name] = append(ps[s.Name], processor.SubConfigProcessor{
					Token:  subConf.Token,
					ID:     srv.ID,
					Type:   define.SubConfigFieldService,
					Config: s,
				})
			}
		}
		for _, inst := range subConf.Instance {
			for _, i := range inst.Processor {
				ps[i.Name] = append(ps[i.Name], processor.SubConfigProcessor{
					Token:  subConf.Token,
					ID:     inst.ID,
					Type:   define.SubConfigFieldInstance,
					Config: i,
				})
			}
		}
	}

	return ps
}

// Manager 负责管理 Pipelines 的解析和存储
// 无并发读写情况 不必加锁
type Manager struct {
	processors map[string]processor.Instance  // key: 处理器实例名称; value: 处理器实例
	pipelines  map[define.RecordType]Pipeline // key: 记录类型; value: 流水线
}

// Getter processor/pipeline 获取接口
type Getter interface {
	// GetProcessor 根据 name 获取 processor 实例
	GetProcessor(name string) processor.Instance

	// GetPipeline 根据 rtype 获取 pipeline 实例
	GetPipeline(rtype define.RecordType) Pipeline
}

var defaultGetter Getter

func GetDefaultGetter() Getter { return defaultGetter }

func parseManagerConfig(conf *confengine.Config) (*Manager, error) {
	// 加载所有子配置
	var patterns []string
	if conf.Has(define.ConfigFieldSubConfigs) {
		if err := conf.UnpackChild(define.ConfigFieldSubConfigs, &patterns); err != nil {
			return nil, err
		}
	}
	subConfigs := confengine.LoadConfigPatterns(patterns)

	// 解析合并：配置 = 主配置+子配置
	processorSubConfigs := parseProcessorSubConfigs(subConfigs)
	processors, err := parseProcessors("main", conf, processorSubConfigs)
	if err != nil {
		return nil, err
	}
	pipelines, err := parsePipelines("main", conf, processors)
	if err != nil {
		return nil, err
	}

	mgr := &Manager{
		processors: processors,
		pipelines:  pipelines,
	}
	return mgr, nil
}

func New(conf *confengine.Config) (*Manager, error) {
	mgr, err := parseManagerConfig(conf)
	if err != nil {
		return nil, err
	}
	defaultGetter = mgr
	return mgr, nil
}

func (mgr *Manager) Reload(conf *confengine.Config) error {
	newManager, err := parseManagerConfig(conf)
	if err != nil {
		return errors.Wrap(err, "pipeline Manager reload error")
	}

	// 清理 Processor
	for _, p := range newManager.processors {
		p.Clean()
	}

	for k, p := range newManager.processors {
		inst, ok := mgr.processors[k]
		if !ok {
			mgr.processors[k] = p
			continue
		}
		inst.Reload(p.MainConfig(), p.SubConfigs())
	}

	mgr.pipelines = newManager.pipelines
	return nil
}

func (mgr *Manager) GetProcessor(name string) processor.Instance {
	return mgr.processors[name]
}

func (mgr *Manager) GetPipeline(rtype define.RecordType) Pipeline {
	return mgr.pipelines[rtype]
}

// Handle 将 Record 交由对应流水线的调度类 processor 依次处理
// 返回数据是否保留 数据被采样丢弃时返回 false
func (mgr *Manager) Handle(record *define.Record) bool {
	pl := mgr.GetPipeline(record.RecordType)
	if pl == nil {
		logger.Warnf("no pipeline found for record type: %v", record.RecordType)
		return true
	}

	DefaultMetricMonitor.IncHandledCounter(record.RecordType)
	for _, name := range pl.SchedProcessors() {
		inst := mgr.GetProcessor(name)
		_, err := inst.Process(record)
		switch {
		case err == nil:
		case errors.Is(err, define.ErrEndOfPipeline):
			DefaultMetricMonitor.IncDroppedCounter(record.RecordType, name)
			return false
		case errors.Is(err, define.ErrSkipEmptyRecord):
			logger.Debugf("processor %s skipped empty record", name)
			return false
		default:
			logger.Errorf("processor %s failed to handle record: %v", name, err)
		}
	}
	return true
}
