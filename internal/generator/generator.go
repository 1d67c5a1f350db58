package generator

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/secwatch/internal/models"
)

// Source supplies randomness to the generator. *rand.Rand from math/rand/v2
// satisfies it; tests plug in scripted sequences.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// Config holds generator dependencies. Zero values fall back to defaults.
type Config struct {
	// Accounts to pick from when a call does not name one
	Accounts []string

	// Source of randomness (default: PCG seeded from the clock)
	Source Source

	// Now returns the current time (default: time.Now)
	Now func() time.Time

	// NewID returns a unique finding instance id (default: uuid.NewString)
	NewID func() string
}

// Generator produces random findings, risk scores, and assets
type Generator struct {
	accounts []string
	src      Source
	now      func() time.Time
	newID    func() string
}

// archetype is a catalog entry that generated findings are copied from
type archetype struct {
	ID             string
	Title          string
	Severity       models.Severity
	Description    string
	Recommendation string
}

var catalog = []archetype{
	{
		ID:             "S3-001",
		Title:          "Public S3 Bucket Access",
		Severity:       models.SeverityCritical,
		Description:    "S3 bucket has public read access enabled",
		Recommendation: "Disable public access and use IAM policies",
	},
	{
		ID:             "EC2-001",
		Title:          "Exposed Security Group",
		Severity:       models.SeverityHigh,
		Description:    "Security group allows unrestricted inbound access",
		Recommendation: "Restrict inbound rules to specific IP ranges",
	},
	{
		ID:             "IAM-001",
		Title:          "Overly Permissive IAM Policy",
		Severity:       models.SeverityHigh,
		Description:    "IAM policy grants excessive permissions",
		Recommendation: "Follow principle of least privilege",
	},
	{
		ID:             "KMS-001",
		Title:          "Unencrypted EBS Volume",
		Severity:       models.SeverityCritical,
		Description:    "EBS volume is not encrypted",
		Recommendation: "Enable encryption for all EBS volumes",
	},
	{
		ID:             "VPC-001",
		Title:          "Open VPC Security Group",
		Severity:       models.SeverityHigh,
		Description:    "VPC security group allows all traffic",
		Recommendation: "Restrict VPC security group rules",
	},
}

var (
	findingStatuses = []string{models.StatusOpen, models.StatusResolved}
	riskTrends      = []string{models.TrendImproving, models.TrendStable, models.TrendDegrading}
	assetTypes      = []string{"EC2", "S3", "RDS", "Lambda", "IAM"}
	assetRegions    = []string{"us-east-1", "us-west-2", "eu-west-1"}
	assetStatuses   = []string{"running", "stopped", "terminated"}
)

// Generation bounds
const (
	maxFindingsPerCall = 5
	maxFindingAgeDays  = 30
	minAssetsPerCall   = 5
	maxAssetsPerCall   = 15
	maxAssetAgeDays    = 7
)

// New creates a generator
func New(cfg Config) *Generator {
	g := &Generator{
		accounts: cfg.Accounts,
		src:      cfg.Source,
		now:      cfg.Now,
		newID:    cfg.NewID,
	}
	if len(g.accounts) == 0 {
		g.accounts = models.DefaultAccounts
	}
	if g.src == nil {
		seed := uint64(time.Now().UnixNano())
		g.src = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.newID == nil {
		g.newID = uuid.NewString
	}
	return g
}

// Catalog returns copies of the archetype findings used for sampling
func Catalog() []models.Finding {
	out := make([]models.Finding, 0, len(catalog))
	for _, a := range catalog {
		out = append(out, a.finding())
	}
	return out
}

// GenerateFindings samples between 1 and 5 archetypes with replacement.
// When severity is set, samples with a different severity are dropped, so
// fewer findings than sampled (including none) may be returned.
func (g *Generator) GenerateFindings(account string, severity models.Severity) []models.Finding {
	n := 1 + g.src.IntN(maxFindingsPerCall)
	findings := make([]models.Finding, 0, n)

	for i := 0; i < n; i++ {
		a := catalog[g.src.IntN(len(catalog))]
		if severity != "" && a.Severity != severity {
			continue
		}

		f := a.finding()
		f.InstanceID = g.newID()
		f.AccountID = g.pickAccount(account)
		f.Timestamp = g.daysAgo(maxFindingAgeDays)
		f.Status = pick(g.src, findingStatuses)
		f.RiskScore = g.riskValue()
		findings = append(findings, f)
	}

	return findings
}

// GenerateRiskScore returns a random risk score with a per-severity breakdown
func (g *Generator) GenerateRiskScore(account string) models.RiskScore {
	return models.RiskScore{
		AccountID: g.pickAccount(account),
		Score:     g.riskValue(),
		Timestamp: g.now(),
		Trend:     pick(g.src, riskTrends),
		FindingsCount: map[models.Severity]int{
			models.SeverityCritical: g.src.IntN(6),
			models.SeverityHigh:     g.src.IntN(11),
			models.SeverityMedium:   g.src.IntN(16),
			models.SeverityLow:      g.src.IntN(21),
		},
	}
}

// GenerateAssets returns between 5 and 15 random assets
func (g *Generator) GenerateAssets(account string) []models.Asset {
	n := minAssetsPerCall + g.src.IntN(maxAssetsPerCall-minAssetsPerCall+1)
	assets := make([]models.Asset, 0, n)

	for i := 0; i < n; i++ {
		assetType := pick(g.src, assetTypes)
		assets = append(assets, models.Asset{
			ID:          fmt.Sprintf("%s-%d", assetType, 1000+g.src.IntN(9000)),
			Type:        assetType,
			AccountID:   g.pickAccount(account),
			Region:      pick(g.src, assetRegions),
			Status:      pick(g.src, assetStatuses),
			LastUpdated: g.daysAgo(maxAssetAgeDays),
		})
	}

	return assets
}

func (g *Generator) pickAccount(account string) string {
	if account != "" {
		return account
	}
	return pick(g.src, g.accounts)
}

// riskValue draws uniformly from [MinRiskScore, MaxRiskScore]
func (g *Generator) riskValue() float64 {
	return models.MinRiskScore + g.src.Float64()*(models.MaxRiskScore-models.MinRiskScore)
}

// daysAgo returns now minus a whole number of days in [0, maxDays]
func (g *Generator) daysAgo(maxDays int) time.Time {
	return g.now().AddDate(0, 0, -g.src.IntN(maxDays+1))
}

func (a archetype) finding() models.Finding {
	return models.Finding{
		ID:             a.ID,
		Title:          a.Title,
		Severity:       a.Severity,
		Description:    a.Description,
		Recommendation: a.Recommendation,
	}
}

func pick(src Source, values []string) string {
	return values[src.IntN(len(values))]
}
