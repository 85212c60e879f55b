package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-ats/internal/ingestion"
	"github.com/jonathan/resume-ats/internal/types"
)

// batchResult is one resume's outcome. Exactly one of Response and Error is set.
type batchResult struct {
	File     string                 `json:"file"`
	Response *types.AnalyzeResponse `json:"response,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

type batchOptions struct {
	dir         string
	jobFile     string
	userID      string
	jobTitle    string
	company     string
	concurrency int
	asJSON      bool
}

func newBatchCmd(root *rootOptions) *cobra.Command {
	opts := &batchOptions{}
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Score every resume in a directory",
		Long: `Score every .txt and .md resume in a directory against the same job description.
Files are analyzed concurrently; a failing file is reported and does not stop the batch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load(cmd)
			if err != nil {
				return err
			}
			userID, err := parseUserID(opts.userID, false)
			if err != nil {
				return err
			}
			if opts.concurrency < 1 {
				return fmt.Errorf("--concurrency must be at least 1")
			}

			files, err := resumeFiles(opts.dir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no .txt or .md resumes found in %s", opts.dir)
			}

			ctx := cmd.Context()
			var jobDescription string
			if opts.jobFile != "" {
				if jobDescription, err = (ingestion.FileExtractor{}).ExtractText(ctx, opts.jobFile); err != nil {
					return err
				}
			}

			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			results := make([]batchResult, len(files))
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(opts.concurrency)
			for i, path := range files {
				g.Go(func() error {
					results[i] = analyzeFile(gctx, a, path, types.AnalyzeRequest{
						JobDescription: jobDescription,
						JobTitle:       opts.jobTitle,
						Company:        opts.company,
					}, userID)
					// per-file failures are reported, only cancellation stops the batch
					return gctx.Err()
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Error != "" {
					failed++
				}
			}
			a.log.Info("batch finished", zap.Int("files", len(files)), zap.Int("failed", failed))

			if opts.asJSON {
				if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
					return err
				}
			} else {
				printBatch(cmd, results)
			}
			if failed == len(results) {
				return fmt.Errorf("all %d resumes failed", failed)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.dir, "dir", "d", "", "Directory of resumes")
	f.StringVarP(&opts.jobFile, "job", "j", "", "Path to a job description file")
	f.StringVar(&opts.userID, "user-id", "", "Save every result to this user's history (UUID)")
	f.StringVar(&opts.jobTitle, "job-title", "", "Job title recorded with saved results")
	f.StringVar(&opts.company, "company", "", "Company recorded with saved results")
	f.IntVarP(&opts.concurrency, "concurrency", "n", 4, "Number of resumes analyzed at once")
	f.BoolVar(&opts.asJSON, "json", false, "Print results as JSON")
	_ = cmd.MarkFlagRequired("dir")
	return cmd
}

func analyzeFile(ctx context.Context, a *app, path string, req types.AnalyzeRequest, userID uuid.UUID) batchResult {
	result := batchResult{File: filepath.Base(path)}

	text, err := (ingestion.FileExtractor{}).ExtractText(ctx, path)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	req.ResumeText = text

	resp, err := a.engine.AnalyzeAndSave(ctx, userID, req)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Response = &resp
	return result
}

// resumeFiles lists the supported files directly inside dir, sorted by name.
func resumeFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() && ingestion.IsSupported(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// printBatch writes results best first, failures last.
func printBatch(cmd *cobra.Command, results []batchResult) {
	sorted := make([]batchResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := sorted[i].Response, sorted[j].Response
		if ri == nil || rj == nil {
			return ri != nil
		}
		return ri.Result.OverallScore > rj.Result.OverallScore
	})

	width := len("FILE")
	for _, r := range sorted {
		width = max(width, len(r.File))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-*s  %5s  %s\n", width, "FILE", "SCORE", "TIER")
	fmt.Fprintln(out, strings.Repeat("-", width+20))
	for _, r := range sorted {
		if r.Response == nil {
			fmt.Fprintf(out, "%-*s  %5s  %s\n", width, r.File, "-", "error: "+r.Error)
			continue
		}
		fmt.Fprintf(out, "%-*s  %5d  %s\n", width, r.File, r.Response.Result.OverallScore, r.Response.Tier)
	}
}
