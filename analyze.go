package sqlast

import (
	"fmt"
	"strings"

	"github.com/oarkflow/sqlast/ast"
)

type FindingSeverity string

const (
	SeverityInfo     FindingSeverity = "info"
	SeverityWarning  FindingSeverity = "warning"
	SeverityCritical FindingSeverity = "critical"
)

// AnalysisFinding is one lint result tied to a statement index.
type AnalysisFinding struct {
	Severity       FindingSeverity
	Code           string
	Problem        string
	Recommendation string
	StatementIndex int
}

// AnalysisReport summarizes a lint pass over one SQL script.
type AnalysisReport struct {
	Valid          bool
	StatementCount int
	Findings       []AnalysisFinding
}

// Analyze parses src and runs the built-in lint checks over the tree.
// A parse failure yields a single critical finding.
func Analyze(src string) AnalysisReport {
	report := AnalysisReport{}
	script, err := Parse(src)
	if err != nil {
		addFinding(&report, SeverityCritical, "PARSE_ERROR", err.Error(),
			"Fix the SQL syntax at the reported offset and re-run.", -1)
		return report
	}
	report.Valid = true
	report.StatementCount = len(script.Statements)
	for i, stmt := range script.Statements {
		analyzeStatement(stmt, i, &report)
	}
	return report
}

func analyzeStatement(stmt ast.Statement, idx int, report *AnalysisReport) {
	switch s := stmt.(type) {
	case *ast.SelectStmt:
		for _, c := range s.Columns {
			if id, ok := c.(*ast.Ident); ok && (id.Name == "*" || strings.HasSuffix(id.Name, ".*")) {
				addFinding(report, SeverityWarning, "SELECT_STAR",
					"Query uses a wildcard column list; it reads unnecessary columns and breaks clients on schema changes.",
					"Select the explicit columns the caller needs.", idx)
				break
			}
		}
		analyzeExpr(s.Where, idx, report)
		analyzeExpr(s.Having, idx, report)
		for _, c := range s.Columns {
			analyzeExpr(c, idx, report)
		}

	case *ast.InsertStmt:
		if len(s.Values) > 1000 {
			addFinding(report, SeverityInfo, "BULK_INSERT_SIZE",
				"Very large VALUES list detected; this can increase lock time and memory pressure.",
				"Split the insert into smaller batches.", idx)
		}
		if len(s.Columns) > 0 && len(s.Values) > 0 && len(s.Columns) != len(s.Values) {
			addFinding(report, SeverityWarning, "COLUMN_VALUE_MISMATCH",
				fmt.Sprintf("INSERT names %d columns but supplies %d values.", len(s.Columns), len(s.Values)),
				"Match the value list to the column list.", idx)
		}

	case *ast.DeleteStmt:
		if s.Where == nil {
			addFinding(report, SeverityCritical, "DELETE_WITHOUT_WHERE",
				"DELETE statement has no WHERE clause and will remove all rows.",
				"Add a WHERE predicate or confirm a full-table delete is intended.", idx)
		}
		analyzeExpr(s.Where, idx, report)

	case *ast.UpdateStmt:
		addFinding(report, SeverityWarning, "UPDATE_PLACEHOLDER",
			"UPDATE is recognized but its grammar is not supported; the statement carries no fields.",
			"Rewrite the logic with supported statements or extend the grammar.", idx)
	}
}

func analyzeExpr(e ast.Expr, idx int, report *AnalysisReport) {
	if e == nil {
		return
	}
	switch x := e.(type) {
	case *ast.BinaryExpr:
		switch {
		case strings.EqualFold(x.Op, "or"):
			addFinding(report, SeverityInfo, "OR_PREDICATE",
				"OR predicate can reduce index selectivity.",
				"Consider splitting the predicate or adding composite indexes.", idx)
		case strings.EqualFold(x.Op, "like"):
			if lit, ok := x.Right.(*ast.Literal); ok && lit.Kind == ast.LitString && strings.HasPrefix(lit.Str, "%") {
				addFinding(report, SeverityInfo, "LIKE_LEADING_WILDCARD",
					"LIKE pattern starts with a wildcard; index seeks are usually not possible.",
					"Anchor the pattern or use a text index.", idx)
			}
		}
		analyzeExpr(x.Left, idx, report)
		analyzeExpr(x.Right, idx, report)
	case *ast.FuncCall:
		for _, a := range x.Args {
			analyzeExpr(a, idx, report)
		}
	}
}

func addFinding(report *AnalysisReport, sev FindingSeverity, code, problem, recommendation string, idx int) {
	report.Findings = append(report.Findings, AnalysisFinding{
		Severity:       sev,
		Code:           code,
		Problem:        problem,
		Recommendation: recommendation,
		StatementIndex: idx,
	})
}

func (r AnalysisReport) String() string {
	if !r.Valid {
		if len(r.Findings) == 0 {
			return "invalid SQL"
		}
		return fmt.Sprintf("invalid SQL: %s", r.Findings[0].Problem)
	}
	if len(r.Findings) == 0 {
		return fmt.Sprintf("valid SQL (%d statements), no findings", r.StatementCount)
	}
	return fmt.Sprintf("valid SQL (%d statements), %d finding(s)", r.StatementCount, len(r.Findings))
}
