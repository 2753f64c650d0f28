package main

import (
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"sheetport-hq/sheetport/pkg/cli"
	"sheetport-hq/sheetport/pkg/export/schema"
	"sheetport-hq/sheetport/pkg/source"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List registered types",
	Long:  `List every registered type with its exportable marker, export member count and groups.`,
	RunE:  runTypes,
}

func init() {
	rootCmd.AddCommand(typesCmd)
}

type typeRow struct {
	Name       string   `json:"name"`
	Exportable bool     `json:"exportable"`
	Members    int      `json:"members"`
	Groups     []string `json:"groups"`
}

type typeList []typeRow

func (l typeList) Header() []string {
	return []string{"NAME", "EXPORTABLE", "MEMBERS", "GROUPS"}
}

func (l typeList) Records() [][]string {
	out := make([][]string, len(l))
	for i, r := range l {
		out[i] = []string{r.Name, strconv.FormatBool(r.Exportable), strconv.Itoa(r.Members), strings.Join(r.Groups, ",")}
	}
	return out
}

func runTypes(cmd *cobra.Command, args []string) error {
	out, err := formatter()
	if err != nil {
		return err
	}

	registry := schema.NewRegistry()
	if err := source.Register(registry); err != nil {
		return cli.NewCommandError("types", err)
	}
	return out.FormatTo(cmd.OutOrStdout(), describeTypes(registry))
}

func describeTypes(registry *schema.Registry) typeList {
	var list typeList
	for _, name := range registry.Names() {
		t, err := registry.Lookup(name)
		if err != nil {
			continue
		}

		row := typeRow{Name: name, Exportable: t.IsExportable(), Groups: []string{}}
		seen := map[string]bool{}
		for _, m := range t.Members() {
			groups := m.LegacyGroups
			if m.Tag != nil {
				groups = m.Tag.Groups
			}
			if m.Tag != nil || m.HasLegacyGroups {
				row.Members++
			}
			for _, g := range groups {
				if !seen[g] {
					seen[g] = true
					row.Groups = append(row.Groups, g)
				}
			}
		}
		sort.Strings(row.Groups)
		list = append(list, row)
	}
	return list
}
