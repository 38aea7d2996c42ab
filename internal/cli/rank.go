package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"hireflow/internal/domain/resume"
	"hireflow/internal/export"
	"hireflow/internal/extract"
	"hireflow/internal/search"

	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank [flags] RESUME...",
	Short: "Rank local resume files against a job description",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jd, err := jobDescriptionFlag(cmd)
		if err != nil {
			return err
		}
		top, _ := cmd.Flags().GetInt("top")
		out, _ := cmd.Flags().GetString("xlsx")

		rows, skipped, err := rankFiles(jd, args, top)
		if err != nil {
			return err
		}
		for _, s := range skipped {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s\n", s)
		}
		if err := printRanking(cmd.OutOrStdout(), rows); err != nil {
			return err
		}

		if out == "" {
			return nil
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()
		if err := export.Screening(f, jd, rows, time.Now()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().String("jd", "", "job description text")
	rankCmd.Flags().String("jd-file", "", "file holding the job description")
	rankCmd.Flags().Int("top", 3, "number of resumes to mark as shortlisted")
	rankCmd.Flags().String("xlsx", "", "also write the ranking to this spreadsheet")
}

func jobDescriptionFlag(cmd *cobra.Command) (string, error) {
	jd, _ := cmd.Flags().GetString("jd")
	if file, _ := cmd.Flags().GetString("jd-file"); file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read job description: %w", err)
		}
		jd = string(b)
	}
	jd = strings.TrimSpace(jd)
	if jd == "" {
		return "", errors.New("a job description is required (--jd or --jd-file)")
	}
	return jd, nil
}

// rankFiles extracts each file and ranks the readable ones. Unreadable or
// unsupported files are returned in skipped.
func rankFiles(jd string, paths []string, top int) ([]resume.Ranked, []string, error) {
	docs := make([]search.Document, 0, len(paths))
	var skipped []string
	for _, p := range paths {
		name := filepath.Base(p)
		if !extract.Allowed(name) {
			skipped = append(skipped, name+": unsupported type")
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			skipped = append(skipped, name+": "+err.Error())
			continue
		}
		text, err := extract.Text(name, data)
		if err != nil || strings.TrimSpace(text) == "" {
			skipped = append(skipped, name+": no text")
			continue
		}
		docs = append(docs, search.Document{OriginalIndex: len(docs), Name: name, Text: text})
	}
	if len(docs) == 0 {
		return nil, skipped, errors.New("no valid resumes")
	}

	ranked := search.RankDocuments(jd, docs)
	rows := make([]resume.Ranked, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, resume.Ranked{
			Filename:       r.Name,
			MatchPercent:   r.MatchPercent,
			Rank:           r.Rank,
			JobDescription: jd,
			Shortlisted:    r.Rank <= top,
		})
	}
	return rows, skipped, nil
}

func printRanking(w io.Writer, rows []resume.Ranked) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tFILE\tMATCH %\tSHORTLISTED")
	for _, r := range rows {
		mark := ""
		if r.Shortlisted {
			mark = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%s\n", r.Rank, r.Filename, r.MatchPercent, mark)
	}
	return tw.Flush()
}
