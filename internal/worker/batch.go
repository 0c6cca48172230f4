package worker

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/avolokh/lazaret/internal/model"
)

// Analyzer scores a single claim.
type Analyzer interface {
	Analyze(ctx context.Context, claim model.Claim) (*model.ManipulationAnalysis, error)
}

// AnalyzeJob scores one claim through the engine.
type AnalyzeJob struct {
	Claim    model.Claim
	Analyzer Analyzer
}

// Execute runs the analysis job.
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	analysis, err := j.Analyzer.Analyze(ctx, j.Claim)
	return &AnalyzeResult{
		Claim:    j.Claim,
		Analysis: analysis,
		Error:    err,
	}
}

// AnalyzeResult is the outcome of an analysis job.
type AnalyzeResult struct {
	Claim    model.Claim
	Analysis *model.ManipulationAnalysis
	Error    error
}

// GetError returns the error from the analysis result.
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor scores multiple claims concurrently.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a batch processor with the given concurrency.
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessClaims scores claims concurrently and returns one result per claim.
func (b *BatchProcessor) ProcessClaims(ctx context.Context, claims []model.Claim) []*AnalyzeResult {
	if len(claims) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, claim := range claims {
		pool.Submit(&AnalyzeJob{
			Claim:    claim,
			Analyzer: b.analyzer,
		})
	}

	results := pool.Wait()

	analyzeResults := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		analyzeResults[i] = result.(*AnalyzeResult)
	}

	return analyzeResults
}

// ProcessFile reads claims from a JSONL file and scores them concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AnalyzeResult, error) {
	claims, err := ReadClaimsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}

	return b.ProcessClaims(ctx, claims), nil
}

// ReadClaimsFromFile reads claims from a file, one JSON object per line.
// Lines holding plain text (not starting with '{') are treated as
// text-only claims. Empty lines and # comments are skipped.
func ReadClaimsFromFile(filePath string) ([]model.Claim, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var claims []model.Claim

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "{") {
			var claim model.Claim
			if err := json.Unmarshal([]byte(line), &claim); err != nil {
				return nil, fmt.Errorf("line %d: parse claim: %w", lineNo, err)
			}
			claims = append(claims, claim)
			continue
		}

		claims = append(claims, model.Claim{Text: line})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return claims, nil
}
