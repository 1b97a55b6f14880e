package services

import (
	"fmt"
	"math"
	"strings"

	"housing-report/models"
)

// Conclude derives the conclusions section from the metrics table, so the
// prose follows the numbers when the metrics are updated.
func (a *ReportAssembler) Conclude(table *models.MetricsTable) (*models.Conclusions, error) {
	if table == nil || len(table.Rows) == 0 {
		return nil, fmt.Errorf("conclusions: %w", ErrNoMetrics)
	}

	records := table.Metrics()
	best, err := BestModel(records)
	if err != nil {
		return nil, err
	}

	out := &models.Conclusions{Best: best}
	bestRow := rowFor(table, best.Name)
	out.Statements = append(out.Statements, fmt.Sprintf(
		"%s had the best overall performance (R² %s, RMSE %s, MAE %s) and is the candidate for a price prediction service.",
		best.Name, bestRow.R2, bestRow.RMSE, bestRow.MAE))

	if len(records) == 1 {
		return out, nil
	}

	rest := make([]models.ModelMetric, 0, len(records)-1)
	for _, m := range records {
		if m.Name != best.Name {
			rest = append(rest, m)
		}
	}
	runner, _ := BestModel(rest)
	out.RunnerUp = &runner
	out.Statements = append(out.Statements, fmt.Sprintf(
		"%s came second, %s R² below the best model.",
		runner.Name, a.policy.R2(best.R2-runner.R2)))

	worst := records[0]
	for _, m := range records[1:] {
		if better(worst, m) {
			worst = m
		}
	}
	if worst.Name != runner.Name {
		out.Statements = append(out.Statements, fmt.Sprintf(
			"Compared with %s (R² %s), %s %s, %s and %s.",
			worst.Name, a.policy.R2(worst.R2), best.Name,
			shift("R²", best.R2-worst.R2, a.policy.R2, "raises", "lowers"),
			shift("RMSE", worst.RMSE-best.RMSE, a.policy.Error, "lowers", "raises"),
			shift("MAE", worst.MAE-best.MAE, a.policy.Error, "lowers", "raises")))
	}

	if s := a.familyStatement(records); s != "" {
		out.Statements = append(out.Statements, s)
	}

	out.Statements = append(out.Statements,
		"No exhaustive hyperparameter search was run; systematic tuning may improve these results further.")
	return out, nil
}

func rowFor(table *models.MetricsTable, name string) models.MetricRow {
	for _, r := range table.Rows {
		if r.Metric.Name == name {
			return r
		}
	}
	return models.MetricRow{}
}

// shift words a difference by its sign so the printed amount is never
// negative. gain is the verb used when d >= 0.
func shift(name string, d float64, format func(float64) string, gain, loss string) string {
	verb := gain
	if d < 0 {
		verb = loss
	}
	return fmt.Sprintf("%s %s by %s", verb, name, format(math.Abs(d)))
}

type modelFamily int

const (
	familyOther modelFamily = iota
	familyLinear
	familyTreeEnsemble
)

var (
	treeEnsembleKeywords = []string{"forest", "boost", "tree", "xgb", "lightgbm"}
	linearKeywords       = []string{"regres", "linear", "lineal", "ridge", "lasso"}
)

// familyOf guesses the model family from its display name. Tree keywords
// win, so "Random Forest Regressor" is an ensemble.
func familyOf(name string) modelFamily {
	lower := strings.ToLower(name)
	for _, k := range treeEnsembleKeywords {
		if strings.Contains(lower, k) {
			return familyTreeEnsemble
		}
	}
	for _, k := range linearKeywords {
		if strings.Contains(lower, k) {
			return familyLinear
		}
	}
	return familyOther
}

// familyStatement contrasts linear models with tree ensembles. It returns
// "" unless both families are present.
func (a *ReportAssembler) familyStatement(records []models.ModelMetric) string {
	var linear, trees []models.ModelMetric
	for _, m := range records {
		switch familyOf(m.Name) {
		case familyLinear:
			linear = append(linear, m)
		case familyTreeEnsemble:
			trees = append(trees, m)
		}
	}
	if len(linear) == 0 || len(trees) == 0 {
		return ""
	}

	linName, linRange := a.familySummary(linear)
	treeName, treeRange := a.familySummary(trees)
	verdict := "tree ensembles capture the price structure better than linear models"
	_, linHi := r2Bounds(linear)
	if treeLo, _ := r2Bounds(trees); treeLo <= linHi {
		verdict = "the two families overlap"
	}
	return fmt.Sprintf("Linear models (%s) reach R² %s, while tree ensembles (%s) reach %s; %s.",
		linName, linRange, treeName, treeRange, verdict)
}

func (a *ReportAssembler) familySummary(ms []models.ModelMetric) (string, string) {
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.Name
	}
	lo, hi := r2Bounds(ms)
	if a.policy.R2(lo) == a.policy.R2(hi) {
		return strings.Join(names, ", "), a.policy.R2(hi)
	}
	return strings.Join(names, ", "), a.policy.R2(lo) + " to " + a.policy.R2(hi)
}

func r2Bounds(ms []models.ModelMetric) (lo, hi float64) {
	lo, hi = ms[0].R2, ms[0].R2
	for _, m := range ms[1:] {
		lo = math.Min(lo, m.R2)
		hi = math.Max(hi, m.R2)
	}
	return lo, hi
}
