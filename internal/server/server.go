// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it creates concrete implementations
// and injects them into the tools/prompts/resources that depend on abstractions.
// No business logic lives here, only wiring.
package server

import (
	"fmt"

	"github.com/HendryAvila/quietscan/internal/archive"
	"github.com/HendryAvila/quietscan/internal/catalog"
	"github.com/HendryAvila/quietscan/internal/config"
	"github.com/HendryAvila/quietscan/internal/flow"
	"github.com/HendryAvila/quietscan/internal/metrics"
	"github.com/HendryAvila/quietscan/internal/prompts"
	"github.com/HendryAvila/quietscan/internal/resources"
	"github.com/HendryAvila/quietscan/internal/scoring"
	"github.com/HendryAvila/quietscan/internal/tools"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Deps are the process-level collaborators the server needs.
type Deps struct {
	Config   config.Config
	Logger   *zap.Logger
	Registry prometheus.Registerer
}

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the session and the archive and
// must be called on shutdown (typically via defer). It is always non-nil.
func New(deps Deps) (*server.MCPServer, func(), error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// --- Create shared dependencies ---

	cat, err := catalog.Load(deps.Config.CatalogFile)
	if err != nil {
		return nil, noop, fmt.Errorf("loading catalog: %w", err)
	}

	m := metrics.MustNewMetrics(deps.Registry)
	engine := scoring.NewEngine(cat, deps.Config.ScoreCacheSize)
	session := flow.NewSession(cat, flow.SessionConfig{
		Delay:    deps.Config.AutoAdvanceDelay,
		Logger:   logger,
		Observer: m,
	})

	scan := &tools.Scan{
		Session: session,
		Engine:  engine,
		Metrics: m,
		Logger:  logger.Named("tools"),
	}

	// The archive is an independent subsystem: if it fails to open, the
	// scan still runs and exports are returned without being stored.
	cleanup := session.Close
	var reports tools.ReportStore
	store, archErr := archive.New(archive.Config{DataDir: deps.Config.DataDir})
	if archErr != nil {
		logger.Warn("report archive disabled", zap.Error(archErr))
	} else {
		reports = store
		scan.Reports = store
		cleanup = func() {
			session.Close()
			if err := store.Close(); err != nil {
				logger.Warn("archive close", zap.Error(err))
			}
		}
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"quietscan",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register scan tools ---

	setupTool := tools.NewSetupTool(scan)
	s.AddTool(setupTool.Definition(), setupTool.Handle)

	startTool := tools.NewStartTool(scan)
	s.AddTool(startTool.Definition(), startTool.Handle)

	answerTool := tools.NewAnswerTool(scan)
	s.AddTool(answerTool.Definition(), answerTool.Handle)

	navigateTool := tools.NewNavigateTool(scan)
	s.AddTool(navigateTool.Definition(), navigateTool.Handle)

	roleTool := tools.NewRoleTool(scan)
	s.AddTool(roleTool.Definition(), roleTool.Handle)

	summaryTool := tools.NewSummaryTool(scan)
	s.AddTool(summaryTool.Definition(), summaryTool.Handle)

	exportTool := tools.NewExportTool(scan)
	s.AddTool(exportTool.Definition(), exportTool.Handle)

	statusTool := tools.NewStatusTool(scan)
	s.AddTool(statusTool.Definition(), statusTool.Handle)

	restartTool := tools.NewRestartTool(scan)
	s.AddTool(restartTool.Definition(), restartTool.Handle)

	reportsTool := tools.NewReportsTool(reports)
	s.AddTool(reportsTool.Definition(), reportsTool.Handle)

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(cat, session)
	s.AddResource(resourceHandler.CatalogResource(), resourceHandler.HandleCatalog)
	s.AddResource(resourceHandler.StatusResource(), resourceHandler.HandleStatus)

	logger.Info("server ready",
		zap.String("version", Version),
		zap.Bool("archive", reports != nil),
		zap.Duration("auto_advance_delay", deps.Config.AutoAdvanceDelay),
	)
	return s, cleanup, nil
}

// noop is a no-op cleanup function used when construction fails.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to run a scan.
func serverInstructions() string {
	return `You have access to quietscan, a Quiet Presence Score (QPS) server.

## WHAT IT DOES

A brand owner and up to three clients answer the same short yes / not sure /
not really questions, grouped into five pillars (Quiet Presence, Quiet
Digital, Quiet Space, Quiet Narrative, Quiet Signature). quietscan scores
each pillar from 0 to 4, derives ten Global Brand Health indicators and a
weighted global QPS, and compares the owner's view with the clients'
average.

## HOW TO RUN A SCAN

1. qps_setup screen=intro, then screen=rules. Show each screen as rendered.
2. qps_setup with who (my-brand or client), scope (full or custom) and, for
   custom, toggle with the chosen pillar keys.
3. qps_start. An empty selection is refused with a message to show the user.
4. For each question, show the text exactly as rendered and the three
   choices. Record the user's choice with qps_answer (question_id + answer).
   NEVER answer on the user's behalf and never guess.
5. qps_navigate moves back or skips; reset_pillar clears the current pillar.
6. At the role prompt, ask whether a client should answer next
   (qps_role add_client) or finish (qps_role finish).
7. Walk the summary with qps_summary next. Read the "Reading this card" text
   to the user; it is the interpretation of the gap.
8. qps_export builds and archives the data package. qps_reports lists
   earlier reports.

## RULES

- A dash (—) means there is no data. Never replace it with zero.
- Gap tones: strong (≥ 1.0), moderate (≥ 0.4), aligned (below 0.4).
- qps_status shows where the session stands at any time.
- qps_restart discards everything; ask for confirmation first.`
}
