package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/owennam/JSHA-master-sub000/internal/application/reconcile"
	"github.com/owennam/JSHA-master-sub000/internal/config"
	"github.com/owennam/JSHA-master-sub000/internal/domain/repository"
	firestoreinfra "github.com/owennam/JSHA-master-sub000/internal/infrastructure/firestore"
	sheetsinfra "github.com/owennam/JSHA-master-sub000/internal/infrastructure/sheets"
	"github.com/owennam/JSHA-master-sub000/pkg/logger"
)

// Small operational tool: run one reconciliation pass and print the
// resulting list as JSON. Corrections run in dry mode, nothing is
// written back to the live store.
func main() {
	statusFilter := flag.String("status", "all", "status filter: completed, cancel_requested, canceled, all")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	appLog, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("create logger failed: %v", err)
	}
	defer appLog.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	ledger, err := sheetsinfra.NewLedgerAdapter(ctx, cfg.Sheets, nil, appLog)
	if err != nil {
		log.Fatalf("create ledger adapter failed: %v", err)
	}

	live, err := firestoreinfra.NewLiveAdapter(ctx, cfg.Firestore, nil, appLog)
	if err != nil {
		log.Fatalf("create live adapter failed: %v", err)
	}
	defer live.Close()

	rules := reconcile.NewRuleEngine(reconcile.NopDispatcher{}, appLog)
	if len(cfg.Corrections.ForceCancelNames) > 0 {
		rule := reconcile.NewForceCancelRule(
			cfg.Corrections.ForceCancelNames,
			cfg.Corrections.ForceCancelReason,
		)
		if err := rules.Register(rule); err != nil {
			log.Fatalf("register correction rule failed: %v", err)
		}
	}

	svc := reconcile.NewService(ledger, live, rules, repository.NopDiagnostics{}, appLog)

	records, err := svc.ListOrders(ctx, *statusFilter)
	if err != nil {
		log.Fatalf("reconcile failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		log.Fatalf("encode output failed: %v", err)
	}
	log.Printf("reconciled %d orders", len(records))
}
