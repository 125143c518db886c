package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"rallyball/internal/api"
	"rallyball/internal/config"
	"rallyball/internal/game"
	"rallyball/internal/persist"
	"rallyball/internal/render"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file from parent directory
	if err := godotenv.Load("../.env"); err != nil {
		// Try current directory as fallback
		if err := godotenv.Load(".env"); err != nil {
			log.Println("💡 No .env file found, using environment variables only")
		}
	} else {
		log.Println("✅ Loaded environment from ../.env")
	}

	log.Println("🏓 ================================")
	log.Println("🏓  RALLYBALL - ARENA ENGINE")
	log.Println("🏓 ================================")

	// Load centralized configuration (SSOT - Single Source of Truth)
	appConfig := config.Load()
	simCfg := appConfig.Sim
	serverCfg := appConfig.Server
	persistCfg := appConfig.Persist

	port := strconv.Itoa(serverCfg.Port)

	log.Printf("🎮 Config: %d TPS, mode=%s, seed=%d, %s vs %s",
		simCfg.TickRate, simCfg.Mode, simCfg.Seed, simCfg.P1Name, simCfg.P2Name)

	// Event log sink
	eventLog := game.NewEventLog()
	if simCfg.EventLogPath != "" {
		if err := eventLog.Start(simCfg.EventLogPath); err != nil {
			log.Printf("⚠️ Event log disabled: %v", err)
			eventLog = nil
		} else {
			log.Printf("📝 Event log: %s", simCfg.EventLogPath)
		}
	} else {
		eventLog = nil
	}

	// Create the session and its tick driver
	session := game.NewSession(game.Config{
		TickRate: simCfg.TickRate,
		Seed:     simCfg.Seed,
		EventLog: eventLog,
	})
	runner := game.NewRunner(session, simCfg.TickRate)

	// Start debug server
	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		if err := api.StartDebugServer(api.DefaultObservabilityConfig()); err != nil {
			log.Printf("⚠️ Debug server disabled: %v", err)
		}
	}

	// Optional leaderboard persistence
	var store *persist.Store
	var leaderboard *persist.Leaderboard
	if persistCfg.MongoURI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		var err error
		store, err = persist.NewStore(ctx, persistCfg.MongoURI)
		if err != nil {
			log.Printf("⚠️ Leaderboard persistence disabled: %v", err)
		} else {
			if err := store.Migrate(ctx); err != nil {
				log.Printf("⚠️ Leaderboard index setup failed: %v", err)
			}
			leaderboard = persist.NewLeaderboard(store)
		}
		cancel()
	} else {
		log.Println("💡 MONGO_URI not set - leaderboard uses in-memory ledger only")
	}

	// API server with all collaborators wired in
	routerCfg := api.RouterConfig{
		Session:     session,
		Input:       runner,
		Renderer:    render.NewRenderer(),
		CORSOrigins: serverCfg.CORSOrigins,
	}
	if eventLog != nil {
		routerCfg.EventLog = eventLog
	}
	if leaderboard != nil {
		routerCfg.Leaderboard = leaderboard
	}
	server := api.NewServer(routerCfg)

	// Per-tick fanout: metrics, websocket push, and match persistence
	hub := server.Hub()
	runner.OnTick = func(snap game.Snapshot, events []game.Event, tickTime time.Duration) {
		api.RecordTick(tickTime)
		api.UpdateBlocksOnField(len(snap.Blocks))
		api.UpdateBallSpeed(snap.Progress.BallSpeed)

		hub.BroadcastEvents(events)

		for _, ev := range events {
			switch ev.Type {
			case game.EventTypeScore:
				var p game.ScorePayload
				if json.Unmarshal(ev.Payload, &p) == nil {
					api.RecordPoint(p.Flavor)
				}
			case game.EventTypeMatchOver:
				var p game.MatchOverPayload
				if json.Unmarshal(ev.Payload, &p) != nil {
					continue
				}
				api.RecordMatch(p.Cue)
				if leaderboard != nil {
					rec := persist.RecordFromPayload(p, snap.Mode)
					go func() {
						ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
						defer cancel()
						if err := leaderboard.InsertMatch(ctx, rec); err != nil {
							log.Printf("⚠️ Failed to persist match: %v", err)
						}
					}()
				}
			}
		}

		if eventLog != nil && snap.Tick%uint64(simCfg.TickRate) == 0 {
			stats := eventLog.GetStats()
			total, _ := stats["total"].(uint64)
			dropped, _ := stats["dropped"].(uint64)
			api.UpdateEventLogStats(total, dropped)
		}
	}

	// Boot the first match before the driver starts ticking
	if simCfg.AutoStart {
		session.StartMatch(game.ParseMode(simCfg.Mode), simCfg.P1Name, simCfg.P2Name)
	}

	runner.Start()
	log.Println("✅ Tick driver started")

	// Start API server in goroutine
	go func() {
		addr := ":" + port
		if err := server.Start(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("✅ Server ready! Press Ctrl+C to stop.")
	<-quit

	log.Println("🛑 Shutting down...")
	runner.Stop()
	server.Stop()
	if eventLog != nil {
		eventLog.Stop()
	}
	if store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		store.Close(ctx)
		cancel()
	}
	log.Println("👋 Goodbye!")
}
