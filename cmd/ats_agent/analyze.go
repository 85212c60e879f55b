package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ats/internal/config"
	"github.com/jonathan/resume-ats/internal/ingestion"
	"github.com/jonathan/resume-ats/internal/observability"
	"github.com/jonathan/resume-ats/internal/types"
)

type analyzeOptions struct {
	resumeFile string
	jobFile    string
	jobURL     string
	userID     string
	jobTitle   string
	company    string
	asJSON     bool
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	opts := &analyzeOptions{}
	var useBrowser bool
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a resume for ATS compatibility",
		Long: `Score a resume file, optionally against a job description given as a file or URL.
With --user-id the result is also saved to that user's history.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load(cmd, config.WithFlag("fetch.useBrowser", cmd.Flags().Lookup("use-browser")))
			if err != nil {
				return err
			}
			return runAnalyze(cmd, cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.resumeFile, "resume", "r", "", "Path to the resume (.txt or .md)")
	f.StringVarP(&opts.jobFile, "job", "j", "", "Path to a job description file")
	f.StringVarP(&opts.jobURL, "job-url", "u", "", "URL of a job posting to fetch")
	f.BoolVar(&useBrowser, "use-browser", false, "Render the job posting in headless Chrome when plain HTTP returns too little text")
	f.StringVar(&opts.userID, "user-id", "", "Save the result to this user's history (UUID)")
	f.StringVar(&opts.jobTitle, "job-title", "", "Job title recorded with the saved result")
	f.StringVar(&opts.company, "company", "", "Company recorded with the saved result")
	f.BoolVar(&opts.asJSON, "json", false, "Print the result as JSON")

	_ = cmd.MarkFlagRequired("resume")
	cmd.MarkFlagsMutuallyExclusive("job", "job-url")
	return cmd
}

func runAnalyze(cmd *cobra.Command, cfg *config.Config, opts *analyzeOptions) error {
	userID, err := parseUserID(opts.userID, false)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	extractor := ingestion.FileExtractor{}
	resumeText, err := extractor.ExtractText(ctx, opts.resumeFile)
	if err != nil {
		return err
	}
	var jobDescription string
	if opts.jobFile != "" {
		if jobDescription, err = extractor.ExtractText(ctx, opts.jobFile); err != nil {
			return err
		}
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	resp, err := a.engine.AnalyzeAndSave(ctx, userID, types.AnalyzeRequest{
		ResumeText:     resumeText,
		JobDescription: jobDescription,
		JobURL:         opts.jobURL,
		JobTitle:       opts.jobTitle,
		Company:        opts.company,
	})
	if err != nil {
		return err
	}
	if userID != uuid.Nil && !resp.Saved {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: the result could not be saved to history")
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		return writeJSON(out, resp)
	}
	observability.NewPrinter(out).PrintAnalysis(&resp.Result)
	if resp.RecordID != nil {
		fmt.Fprintf(out, "Saved as %s\n", resp.RecordID)
	}
	return nil
}

// parseUserID parses a --user-id value. An empty value yields uuid.Nil unless required.
func parseUserID(raw string, required bool) (uuid.UUID, error) {
	if raw == "" {
		if required {
			return uuid.Nil, fmt.Errorf("--user-id is required")
		}
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid --user-id %q: %w", raw, err)
	}
	if id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("--user-id must not be the nil UUID")
	}
	return id, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
