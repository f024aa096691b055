package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"LogTimelineChart/internal/chart"
	"LogTimelineChart/internal/clickhouseclient"
	"LogTimelineChart/internal/config"
	"LogTimelineChart/internal/emitter"
	"LogTimelineChart/internal/logger"
	"LogTimelineChart/internal/parser"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "путь к YAML-конфигурации")
	outputPath := pflag.StringP("output", "o", "", "путь к HTML-файлу результата (по умолчанию stdout)")
	pflag.Parse()

	if *configPath == "" || pflag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "использование: %s -c config.yaml [-o out.html] <лог-файл>\n", os.Args[0])
		os.Exit(1)
	}
	logPath := pflag.Arg(0)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		// Логгер ещё не создан, пишем в stderr напрямую
		fmt.Fprintf(os.Stderr, "ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	rootLogger, err := logger.InitZap(&cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ошибка инициализации логгера: %v\n", err)
		os.Exit(1)
	}
	lg := rootLogger.Named("main")
	defer lg.Sync()
	lg.Info("Строим диаграмму выполнения", zap.String("log", logPath))

	rules, err := parser.Compile(cfg)
	if err != nil {
		lg.Fatal("Ошибка компиляции паттернов", zap.Error(err))
	}

	logFile, err := os.Open(logPath)
	if err != nil {
		lg.Fatal("Не удалось открыть лог-файл", zap.String("path", logPath), zap.Error(err))
	}
	defer logFile.Close()

	builder := chart.NewBuilder(rules, rootLogger.Named("chart"))
	if err := builder.Ingest(logFile); err != nil {
		lg.Fatal("Ошибка обработки лога", zap.Error(err))
	}
	ch, err := builder.Build()
	if err != nil {
		lg.Fatal("Не удалось построить диаграмму", zap.Error(err))
	}

	if cfg.ClickHouse.Enable {
		client, err := clickhouseclient.New(cfg.ClickHouse, rootLogger.Named("clickhouse"))
		if err != nil {
			lg.Fatal("Ошибка подключения к ClickHouse", zap.Error(err))
		}
		defer client.Close()
		if err := client.InsertEventBatch(context.Background(), ch.Events); err != nil {
			lg.Fatal("Ошибка выгрузки событий в ClickHouse", zap.Error(err))
		}
	}

	out := os.Stdout
	dest := cfg.Output.Path
	if *outputPath != "" {
		dest = *outputPath
	}
	if dest != "" {
		f, err := os.Create(dest)
		if err != nil {
			lg.Fatal("Не удалось создать файл результата", zap.String("path", dest), zap.Error(err))
		}
		defer f.Close()
		out = f
	}

	em := emitter.New(rules.ColorValues(), rootLogger.Named("emitter"))
	if err := em.Emit(out, ch); err != nil {
		lg.Fatal("Ошибка формирования HTML", zap.Error(err))
	}
}
