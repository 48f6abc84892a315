// closematch prints, for every rune of a query text, the nearest reference
// positions in suffix order together with the length of the shared prefix.
package main

import (
	"fmt"
	"os"
	"strconv"

	humanize "github.com/dustin/go-humanize"
	"github.com/itchio/headway/state"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/viniciusth/closematch"
	"github.com/viniciusth/closematch/textseq"
)

var (
	queryFlag = &cli.StringFlag{
		Name:     "query",
		Usage:    "File holding the query text",
		EnvVars:  []string{"CLOSEMATCH_QUERY"},
		Required: true,
	}
	referenceFlag = &cli.StringFlag{
		Name:     "reference",
		Usage:    "File holding the reference text",
		EnvVars:  []string{"CLOSEMATCH_REFERENCE"},
		Required: true,
	}
	algorithmFlag = &cli.StringFlag{
		Name:    "algorithm",
		Usage:   "Suffix array construction: auto, sais, dc3, doubling or gosaca",
		EnvVars: []string{"CLOSEMATCH_ALGORITHM"},
		Value:   closematch.AlgorithmAuto.String(),
	}
	noRenumberFlag = &cli.BoolFlag{
		Name:    "no-renumber",
		Usage:   "Sort code points as they are instead of compacting the alphabet",
		EnvVars: []string{"CLOSEMATCH_NO_RENUMBER"},
	}
	concurrencyFlag = &cli.IntFlag{
		Name:    "concurrency",
		Usage:   "Goroutines used by the doubling sorter",
		EnvVars: []string{"CLOSEMATCH_CONCURRENCY"},
		Value:   1,
	}
	caseSensitiveFlag = &cli.BoolFlag{
		Name:    "case-sensitive",
		Usage:   "Do not lower-case either text",
		EnvVars: []string{"CLOSEMATCH_CASE_SENSITIVE"},
	}
	noNormalizeFlag = &cli.BoolFlag{
		Name:    "no-normalize",
		Usage:   "Do not apply NFC normalization",
		EnvVars: []string{"CLOSEMATCH_NO_NORMALIZE"},
	}
	contextFlag = &cli.IntFlag{
		Name:    "context",
		Usage:   "Runes of text shown for every position",
		EnvVars: []string{"CLOSEMATCH_CONTEXT"},
		Value:   16,
	}
	verboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Usage:   "Log construction details and print error stacks",
		EnvVars: []string{"CLOSEMATCH_VERBOSE"},
	}
)

var verbose bool

func main() {
	verboseFlag.Destination = &verbose

	app := &cli.App{
		Name:  "closematch",
		Usage: "find the closest reference suffixes of every query position",
		Flags: []cli.Flag{
			queryFlag,
			referenceFlag,
			algorithmFlag,
			noRenumberFlag,
			concurrencyFlag,
			caseSensitiveFlag,
			noNormalizeFlag,
			contextFlag,
			verboseFlag,
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "%+v\n", err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newConsumer() *state.Consumer {
	return &state.Consumer{
		OnMessage: func(level string, msg string) {
			if level == "debug" && !verbose {
				return
			}
			fmt.Fprintf(os.Stderr, "[%s] %s\n", level, msg)
		},
	}
}

func run(ctx *cli.Context) error {
	consumer := newConsumer()

	algorithm, err := closematch.ParseAlgorithm(ctx.String(algorithmFlag.Name))
	if err != nil {
		return err
	}
	opts := textseq.Options{
		CaseSensitive:     ctx.Bool(caseSensitiveFlag.Name),
		SkipNormalization: ctx.Bool(noNormalizeFlag.Name),
	}

	query, err := readText(ctx.String(queryFlag.Name), opts, consumer)
	if err != nil {
		return err
	}
	reference, err := readText(ctx.String(referenceFlag.Name), opts, consumer)
	if err != nil {
		return err
	}

	ix, err := closematch.NewIndex(query.Symbols, reference.Symbols, func(b *closematch.Builder[int32]) *closematch.Builder[int32] {
		if ctx.Bool(noRenumberFlag.Name) {
			b.SkipRenumbering()
		}
		return b.WithAlgorithm(algorithm).
			WithConcurrency(ctx.Int(concurrencyFlag.Name)).
			WithConsumer(consumer)
	})
	if err != nil {
		return err
	}

	matches := ix.CloseMatches()
	lengths, err := ix.MatchLengths(matches)
	if err != nil {
		return err
	}

	width := ctx.Int(contextFlag.Name)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Pos", "Query", "Pred", "Pred text", "Len", "Succ", "Succ text", "Len"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)

	for p := 0; p < ix.QueryLen(); p++ {
		pred, succ, err := ix.Neighbors(p)
		if err != nil {
			return err
		}
		row := []string{strconv.Itoa(p), query.Snippet(p, width)}
		row = append(row, neighborCells(pred, lengths[2*p], ix.QueryLen(), reference, width)...)
		row = append(row, neighborCells(succ, lengths[2*p+1], ix.QueryLen(), reference, width)...)
		table.Append(row)
	}
	table.Render()
	return nil
}

func readText(path string, opts textseq.Options, consumer *state.Consumer) (*textseq.Text, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	text, err := textseq.Encode(string(data), opts)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding %s", path)
	}
	consumer.Debugf("Read %s (%s, %s runes)", path,
		humanize.IBytes(uint64(len(data))), humanize.Comma(int64(text.Len())))
	return text, nil
}

// neighborCells renders one side of a close match. Reference positions are
// shown relative to the start of the reference text.
func neighborCells(n closematch.Neighbor, length int, queryLen int, reference *textseq.Text, width int) []string {
	if !n.Valid {
		return []string{"-", "", ""}
	}
	pos := int(n.Position) - queryLen
	return []string{strconv.Itoa(pos), reference.Snippet(pos, width), strconv.Itoa(length)}
}
