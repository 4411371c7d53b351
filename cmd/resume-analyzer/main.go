package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-analyzer-go/internal/agent"
	"resume-analyzer-go/internal/api/handler"
	"resume-analyzer-go/internal/api/router"
	"resume-analyzer-go/internal/config"
	appCoreLogger "resume-analyzer-go/internal/logger"
	"resume-analyzer-go/internal/parser"
	"resume-analyzer-go/internal/processor"
	"resume-analyzer-go/internal/storage"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"
)

var (
	version     = "1.0.0"           //nolint:gochecknoglobals
	serviceName = "resume-analyzer" //nolint:gochecknoglobals
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	initLogger(cfg)
	glog.Infof("%s %s 配置加载成功", serviceName, version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		glog.Fatalf("初始化存储失败: %v", err)
	}
	defer storageManager.Close()
	glog.Info("存储服务初始化成功")

	classifier := initClassifier(cfg)

	compOpts := []processor.ComponentOpt{
		processor.WithcompSegmenter(parser.NewSectionSegmenter(
			parser.WithMaxHeaderLength(cfg.Analyzer.MaxHeaderLength),
		)),
		processor.WithcompStorage(storageManager),
	}
	if classifier != nil {
		compOpts = append(compOpts, processor.WithcompClassifier(classifier))
	}

	var analyzerLogger *log.Logger
	if cfg.Logger.Level == "debug" {
		analyzerLogger = log.New(os.Stderr, "[AnalyzerMain] ", log.LstdFlags|log.Lshortfile)
	} else {
		analyzerLogger = log.New(io.Discard, "", 0)
	}

	setOpts := []processor.SettingOpt{
		processor.WithsetMinTextLength(cfg.Analyzer.MinTextLength),
		processor.WithsetEnhancedContact(cfg.Analyzer.EnhancedContact),
		processor.WithsetParserVersion(cfg.Analyzer.ActiveParserVers),
		processor.WithsetLogger(analyzerLogger),
		processor.WithsetTimeLocation(time.Local),
	}

	resumeAnalyzer := processor.NewResumeAnalyzer(compOpts, setOpts)
	glog.Info("ResumeAnalyzer初始化成功")

	analysisHandler := handler.NewAnalysisHandler(cfg, storageManager, resumeAnalyzer)
	glog.Info("AnalysisHandler初始化成功")

	if storageManager.RabbitMQ != nil {
		go func() {
			workers := 4
			if w, ok := cfg.RabbitMQ.ConsumerWorkers["analysis_consumer_workers"]; ok {
				workers = w
			}
			glog.Infof("启动分析消费者，工作线程数: %d", workers)
			if err := storageManager.RabbitMQ.StartAnalysisConsumer(ctx, workers, analysisHandler.ProcessUploadMessage); err != nil {
				glog.Errorf("分析消费者退出: %v", err)
			}
		}()
	} else {
		glog.Warn("RabbitMQ未配置，异步分析消费者不启动")
	}

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})

	router.RegisterRoutes(h, analysisHandler)
	glog.Info("HTTP路由注册成功")

	glog.Infof("HTTP 服务器启动中，监听地址: %s", cfg.Server.Address)
	go func() {
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")

	cancel() // 先停消费者

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Fatalf("服务器关闭失败: %v", err)
	}
	glog.Info("优雅退出完成")
}

// initLogger 初始化zerolog并接管Hertz的日志输出
func initLogger(cfg *config.Config) {
	appCoreLogger.Init(appCoreLogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})

	hertzCompatibleLogger := hertzadapter.From(appCoreLogger.Logger)
	glog.SetLogger(hertzCompatibleLogger)
}

// initClassifier 按配置构建LLM分类器。
// 禁用AI或缺少API Key时返回nil，流水线自动退化为纯启发式路径。
func initClassifier(cfg *config.Config) agent.Classifier {
	if cfg.Analyzer.DisableAI {
		glog.Info("AI路径已禁用，仅使用启发式提取")
		return nil
	}
	if cfg.Aliyun.APIKey == "" {
		glog.Warn("未配置阿里云API Key，仅使用启发式提取")
		return nil
	}

	chatModel, err := agent.NewAliyunQwenChatModel(
		cfg.Aliyun.APIKey,
		cfg.GetModelForTask(parser.TaskSkillCategorization),
		cfg.Aliyun.APIURL,
	)
	if err != nil {
		glog.Warnf("初始化通义千问模型失败，回退到启发式路径: %v", err)
		return nil
	}

	callTimeout := config.GetDuration(cfg.Analyzer.AICallTimeout, 30*time.Second)
	classifierLogger := log.New(appCoreLogger.Logger, "[Classifier] ", log.LstdFlags)

	classifier := agent.NewLLMClassifier(chatModel,
		agent.WithCallTimeout(callTimeout),
		agent.WithTaskPrompt(parser.TaskSkillCategorization, parser.SkillCategorizationPrompt),
		agent.WithTaskPrompt(processor.TaskContactExtraction, processor.ContactExtractionPrompt),
		agent.WithClassifierLogger(classifierLogger),
	)
	glog.Info("LLM分类器初始化成功")
	return classifier
}
