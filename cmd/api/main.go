package main

import (
	"context"
	"log"

	"github.com/owennam/JSHA-master-sub000/internal/application/reconcile"
	"github.com/owennam/JSHA-master-sub000/internal/config"
	"github.com/owennam/JSHA-master-sub000/internal/domain/repository"
	firestoreinfra "github.com/owennam/JSHA-master-sub000/internal/infrastructure/firestore"
	ginserver "github.com/owennam/JSHA-master-sub000/internal/infrastructure/http/gin"
	kafkainfra "github.com/owennam/JSHA-master-sub000/internal/infrastructure/messaging/kafka"
	sheetsinfra "github.com/owennam/JSHA-master-sub000/internal/infrastructure/sheets"
	"github.com/owennam/JSHA-master-sub000/internal/interfaces/http/handler"
	"github.com/owennam/JSHA-master-sub000/internal/interfaces/http/router"
	"github.com/owennam/JSHA-master-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	appLog, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("create logger failed: %v", err)
	}
	defer appLog.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var diag repository.DiagnosticsPublisher = repository.NopDiagnostics{}
	if cfg.Kafka.DiagnosticsEnabled() {
		producer, err := kafkainfra.NewDiagnosticsProducer(cfg.Kafka, appLog)
		if err != nil {
			log.Fatalf("create diagnostics producer failed: %v", err)
		}
		defer producer.Close(ctx)
		diag = producer
	}

	ledger, err := sheetsinfra.NewLedgerAdapter(ctx, cfg.Sheets, diag, appLog)
	if err != nil {
		log.Fatalf("create ledger adapter failed: %v", err)
	}

	live, err := firestoreinfra.NewLiveAdapter(ctx, cfg.Firestore, diag, appLog)
	if err != nil {
		log.Fatalf("create live adapter failed: %v", err)
	}
	defer live.Close()

	dispatcher := reconcile.NewWritebackDispatcher(live, diag, appLog, 2, 128)
	dispatcher.Start()
	defer dispatcher.Stop()

	rules := reconcile.NewRuleEngine(dispatcher, appLog)
	if len(cfg.Corrections.ForceCancelNames) > 0 {
		rule := reconcile.NewForceCancelRule(
			cfg.Corrections.ForceCancelNames,
			cfg.Corrections.ForceCancelReason,
		)
		if err := rules.Register(rule); err != nil {
			log.Fatalf("register correction rule failed: %v", err)
		}
	}

	svc := reconcile.NewService(ledger, live, rules, diag, appLog)

	orderHandler := handler.NewOrderHandler(svc)
	engine := ginserver.NewEngine()
	router.RegisterRoutes(engine, orderHandler)

	appLog.Info("starting order ledger api",
		logger.String("addr", cfg.Server.Address()),
		logger.String("env", cfg.App.Env))

	server := ginserver.NewServer(cfg.Server, engine)
	if err := server.Run(); err != nil {
		log.Fatalf("server run failed: %v", err)
	}
}
