// Package admissibility decides whether a document may be used as a basis
// for legal analysis. The engine aggregates rule evaluators, the dedicated
// custody and source-authority checks, and optional claim-type matching into
// a single audited decision.
package admissibility

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/google/uuid"

	"exhibit/internal/admissibility/metrics"
	"exhibit/internal/audit"
	"exhibit/internal/claims"
	"exhibit/internal/custody"
	"exhibit/internal/document"
	"exhibit/internal/platform/config"
	"exhibit/internal/rules"
	"exhibit/internal/sourceauth"
	dErrors "exhibit/pkg/domain-errors"
	"exhibit/pkg/requestcontext"
)

// CheckRequest identifies what to gate. ClaimTypeID and RequestorRef are
// optional.
type CheckRequest struct {
	DocumentID   string
	ClaimTypeID  string
	RequestorRef string
}

// Result is the audited decision plus a requestor-facing summary.
type Result struct {
	audit.Request
	Summary string `json:"summary"`
}

// Engine orchestrates the admissibility evaluators and owns the audit write.
type Engine struct {
	documents  document.Reader
	registry   *rules.Registry
	evaluators *EvaluatorRegistry
	custody    *custody.Ledger
	sources    *sourceauth.Service
	analyzer   *claims.Analyzer
	auditStore audit.Store
	policy     config.FailurePolicy
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewEngine(
	documents document.Reader,
	registry *rules.Registry,
	evaluators *EvaluatorRegistry,
	custodyLedger *custody.Ledger,
	sources *sourceauth.Service,
	analyzer *claims.Analyzer,
	auditStore audit.Store,
	policy config.FailurePolicy,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Engine {
	return &Engine{
		documents:  documents,
		registry:   registry,
		evaluators: evaluators,
		custody:    custodyLedger,
		sources:    sources,
		analyzer:   analyzer,
		auditStore: auditStore,
		policy:     policy,
		logger:     logger,
		metrics:    m,
	}
}

// evaluated pairs a flag with whether its failure rejects the document.
type evaluated struct {
	flag      audit.Flag
	rejecting bool
}

// CheckAdmissibility runs the full decision workflow and persists exactly one
// immutable audit record, regardless of outcome. Infrastructure failures
// abort the call before any audit write; there are no partial records.
func (e *Engine) CheckAdmissibility(ctx context.Context, req CheckRequest) (*Result, error) {
	doc, err := e.documents.GetDocument(ctx, req.DocumentID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "document store unreachable")
	}
	if doc == nil {
		// Terminal: no further evaluation, empty flag set.
		record := e.newRecord(ctx, req)
		record.Status = audit.StatusRejected
		record.RejectionReason = "Document not found"
		return e.finish(ctx, record)
	}

	if req.ClaimTypeID != "" {
		// Unknown claim type is a malformed request, rejected before any
		// evaluation or audit write.
		if _, err := e.analyzer.GetClaimType(ctx, req.ClaimTypeID); err != nil {
			return nil, err
		}
	}

	activeRules, err := e.registry.ActiveRules(ctx)
	if err != nil {
		return nil, err
	}
	articles, err := e.registry.ActiveArticles(ctx)
	if err != nil {
		return nil, err
	}

	var (
		ruleResults []evaluated
		custodyFlag evaluated
		sourceFlag  evaluated
		missing     []string
	)

	// Evaluators may run in any order: the aggregation below is
	// deterministic, so concurrency is not externally observable.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ruleResults = e.runRuleTable(gctx, activeRules, doc)
		return nil
	})
	g.Go(func() error {
		flag, err := e.checkCustody(gctx, activeRules, doc.ID)
		if err != nil {
			return err
		}
		custodyFlag = flag
		return nil
	})
	g.Go(func() error {
		flag, err := e.checkSource(gctx, activeRules, doc)
		if err != nil {
			return err
		}
		sourceFlag = flag
		return nil
	})
	if req.ClaimTypeID != "" {
		g.Go(func() error {
			unmet, err := e.analyzer.MissingRequired(gctx, doc, req.ClaimTypeID)
			if err != nil {
				return err
			}
			missing = unmet
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := append(ruleResults, custodyFlag, sourceFlag)
	sort.SliceStable(all, func(i, j int) bool { return all[i].flag.RuleCode < all[j].flag.RuleCode })

	record := e.newRecord(ctx, req)
	record.Flags = make([]audit.Flag, 0, len(all))
	var reasons []string
	for _, ev := range all {
		record.Flags = append(record.Flags, ev.flag)
		if ev.flag.Status != audit.FlagFail {
			continue
		}
		record.ViolatedArticles = append(record.ViolatedArticles, citeArticle(articles, ev.flag))
		if ev.rejecting {
			reasons = append(reasons, ev.flag.RuleText)
		}
	}
	record.MissingSources = append(record.MissingSources, missing...)

	// Priority policy: rejection beats insufficiency beats approval.
	switch {
	case len(reasons) > 0:
		record.Status = audit.StatusRejected
		record.RejectionReason = strings.Join(reasons, "; ")
	case req.ClaimTypeID != "" && len(missing) > 0:
		record.Status = audit.StatusInsufficient
	default:
		record.Status = audit.StatusApproved
		record.ApprovalScope = e.approvalScope(ctx, req)
	}

	return e.finish(ctx, record)
}

// ListRequests exposes the audit read side.
func (e *Engine) ListRequests(ctx context.Context, documentID string, limit int) ([]audit.Request, error) {
	var (
		records []audit.Request
		err     error
	)
	if documentID != "" {
		records, err = e.auditStore.ListByDocument(ctx, documentID)
	} else {
		records, err = e.auditStore.ListRecent(ctx, limit)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "audit store unreachable")
	}
	return records, nil
}

// ListRules exposes the active rule table.
func (e *Engine) ListRules(ctx context.Context) ([]rules.AdmissibilityRule, error) {
	return e.registry.ActiveRules(ctx)
}

// ListConstitution exposes the active constitution articles.
func (e *Engine) ListConstitution(ctx context.Context) ([]rules.ConstitutionArticle, error) {
	return e.registry.ActiveArticles(ctx)
}

func (e *Engine) newRecord(ctx context.Context, req CheckRequest) *audit.Request {
	return &audit.Request{
		RequestID:        uuid.New(),
		DocumentID:       req.DocumentID,
		ClaimTypeID:      req.ClaimTypeID,
		RequestorRef:     req.RequestorRef,
		MissingSources:   []string{},
		ViolatedArticles: []string{},
		Flags:            []audit.Flag{},
		ReviewedAt:       requestcontext.Now(ctx),
	}
}

// runRuleTable evaluates every active rule except the reserved codes, whose
// real evaluation happens in the dedicated checks.
func (e *Engine) runRuleTable(ctx context.Context, activeRules []rules.AdmissibilityRule, doc *document.Document) []evaluated {
	var results []evaluated
	for _, rule := range activeRules {
		if rule.Code == rules.CodeChainOfCustody || rule.Code == rules.CodeSourceAuthority {
			continue
		}

		status, details, err := e.evaluators.Evaluate(rule, doc)
		if err != nil {
			results = append(results, e.faultedFlag(ctx, rule, err))
			continue
		}
		results = append(results, evaluated{
			flag: audit.Flag{
				RuleCode: rule.Code,
				RuleText: rule.Text,
				Status:   status,
				Details:  details,
			},
			rejecting: status == audit.FlagFail && rule.FailureAction == rules.FailureReject,
		})
	}
	return results
}

// faultedFlag applies the configured evaluator failure policy. The default
// downgrades the fault to a warn flag so one misbehaving evaluator cannot
// corrupt unrelated decisions; the reject policy is for deployments whose
// rules carry security-critical logic.
func (e *Engine) faultedFlag(ctx context.Context, rule rules.AdmissibilityRule, err error) evaluated {
	e.metrics.IncrementEvaluatorFailures()
	e.logger.ErrorContext(ctx, "rule evaluator faulted",
		"rule_code", rule.Code,
		"error", err,
	)

	if e.policy == config.FailurePolicyReject {
		return evaluated{
			flag: audit.Flag{
				RuleCode: rule.Code,
				RuleText: rule.Text,
				Status:   audit.FlagFail,
				Details:  fmt.Sprintf("evaluator error: %v", err),
			},
			rejecting: true,
		}
	}
	return evaluated{
		flag: audit.Flag{
			RuleCode: rule.Code,
			RuleText: rule.Text,
			Status:   audit.FlagWarn,
			Details:  fmt.Sprintf("evaluator error: %v", err),
		},
	}
}

func (e *Engine) checkCustody(ctx context.Context, activeRules []rules.AdmissibilityRule, documentID string) (evaluated, error) {
	documented, err := e.custody.HasCustody(ctx, documentID)
	if err != nil {
		return evaluated{}, err
	}

	flag := audit.Flag{
		RuleCode: rules.CodeChainOfCustody,
		RuleText: ruleText(activeRules, rules.CodeChainOfCustody, "Chain of custody must be documented"),
	}
	if documented {
		flag.Status = audit.FlagPass
	} else {
		// Absence of custody tracking is suspicious but not disqualifying.
		flag.Status = audit.FlagWarn
		flag.Details = "no chain-of-custody entries recorded"
	}
	return evaluated{flag: flag}, nil
}

func (e *Engine) checkSource(ctx context.Context, activeRules []rules.AdmissibilityRule, doc *document.Document) (evaluated, error) {
	category, _, err := e.sources.Classify(ctx, doc.Metadata.SourceType)
	if err != nil {
		return evaluated{}, err
	}

	flag := audit.Flag{
		RuleCode: rules.CodeSourceAuthority,
		RuleText: ruleText(activeRules, rules.CodeSourceAuthority, "Document source must be an approved authority"),
	}
	switch category {
	case sourceauth.CategoryExcluded:
		flag.Status = audit.FlagFail
		flag.Details = fmt.Sprintf("source type %q is excluded", doc.Metadata.SourceType)
		return evaluated{flag: flag, rejecting: true}, nil
	case sourceauth.CategoryUnknown:
		flag.Status = audit.FlagWarn
		flag.Details = fmt.Sprintf("source type %q is not cataloged", doc.Metadata.SourceType)
	default:
		flag.Status = audit.FlagPass
	}
	return evaluated{flag: flag}, nil
}

func (e *Engine) approvalScope(ctx context.Context, req CheckRequest) string {
	if req.ClaimTypeID == "" {
		return "Document admissible as a basis for legal analysis"
	}
	claimType, err := e.analyzer.GetClaimType(ctx, req.ClaimTypeID)
	if err != nil || claimType == nil {
		return fmt.Sprintf("Document admissible in support of claim type %s", req.ClaimTypeID)
	}
	return fmt.Sprintf("Document admissible in support of %q claims", claimType.Name)
}

// finish persists the audit record and returns the result. The write runs on
// a detached context: once audit persistence starts, caller cancellation is
// a no-op, so every persisted request is a fully-evaluated decision.
func (e *Engine) finish(ctx context.Context, record *audit.Request) (*Result, error) {
	auditCtx := context.WithoutCancel(ctx)
	if err := e.auditStore.Append(auditCtx, record); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "audit store unreachable")
	}

	e.metrics.IncrementDecisions(string(record.Status))
	e.logger.InfoContext(ctx, "admissibility decided",
		"request_id", record.RequestID,
		"document_id", record.DocumentID,
		"claim_type_id", record.ClaimTypeID,
		"status", record.Status,
		"flags", len(record.Flags),
	)

	return &Result{Request: *record, Summary: Summarize(record)}, nil
}

// ruleText prefers the administratively configured text for a code.
func ruleText(activeRules []rules.AdmissibilityRule, code, fallback string) string {
	for _, r := range activeRules {
		if r.Code == code {
			return r.Text
		}
	}
	return fallback
}

// citeArticle finds the constitution article citing a rule code, by the
// text-mention convention; the flag's own code and text stand in when no
// article mentions it.
func citeArticle(articles []rules.ConstitutionArticle, flag audit.Flag) string {
	for _, a := range articles {
		if strings.Contains(strings.ToUpper(a.Title+" "+a.Text), flag.RuleCode) {
			return fmt.Sprintf("Article %d: %s [%s]", a.Number, a.Title, flag.RuleCode)
		}
	}
	return fmt.Sprintf("%s: %s", flag.RuleCode, flag.RuleText)
}
