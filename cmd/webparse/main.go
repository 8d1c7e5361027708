package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jhendrix/webparse/parser"
	"github.com/jhendrix/webparse/parser/dom"
)

func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := ioutil.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "webparse",
		Short: "Error-tolerant HTML parser",
	}

	var verbose bool
	var scripting bool
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace tokenizer and tree constructor state transitions")
	rootCmd.PersistentFlags().BoolVar(&scripting, "scripting", false, "parse with the scripting flag enabled")

	options := func() []parser.Option {
		opts := []parser.Option{parser.WithScripting(scripting)}
		if verbose {
			l := logrus.New()
			l.SetLevel(logrus.TraceLevel)
			opts = append(opts, parser.WithLogger(l))
		}
		return opts
	}

	var fragmentContext string
	treeCmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Parse a document and dump the resulting tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}

			var doc *dom.Document
			var errs []parser.ParseError
			if fragmentContext != "" {
				var children []dom.NodeRef
				doc, children, errs, err = parser.ParseFragment(input, fragmentContext, options()...)
				if err != nil {
					return err
				}
				for _, child := range children {
					fmt.Println(doc.DumpTree(child))
				}
			} else {
				doc, errs, err = parser.ParseString(input, options()...)
				if err != nil {
					return err
				}
				fmt.Println(doc.DumpTree(doc.Root()))
			}

			if len(errs) > 0 {
				fmt.Fprintf(os.Stderr, "%d parse errors\n", len(errs))
			}
			return nil
		},
	}
	treeCmd.Flags().StringVar(&fragmentContext, "fragment", "", "parse as a fragment in the given context element")

	errorsCmd := &cobra.Command{
		Use:   "errors [file]",
		Short: "List the recoverable parse errors in a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}
			_, errs, err := parser.ParseString(input, options()...)
			if err != nil {
				return err
			}
			for _, e := range errs {
				fmt.Println(e.Error())
			}
			return nil
		},
	}

	serializeCmd := &cobra.Command{
		Use:   "serialize [file]",
		Short: "Parse a document and write it back out as HTML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}
			doc, _, err := parser.ParseString(input, options()...)
			if err != nil {
				return err
			}
			fmt.Println(doc.SerializeHTML(doc.Root()))
			return nil
		},
	}

	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(errorsCmd)
	rootCmd.AddCommand(serializeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
