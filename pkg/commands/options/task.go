package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/things/pkg/task"
)

// CategoryOptions
type CategoryOptions struct {
	Category string
}

func AddCategoryArgs(cmd *cobra.Command, o *CategoryOptions, def string) {
	cmd.Flags().StringVarP(&o.Category, "category", "c", def,
		"Task category, personal or business.")
	_ = cmd.RegisterFlagCompletionFunc("category", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return categoryNames(), cobra.ShellCompDirectiveNoFileComp
	})
}

// GetCategory parses the flag, returning fallback when it was left empty.
func (o *CategoryOptions) GetCategory(fallback task.Category) (task.Category, error) {
	return task.ParseCategory(o.Category, fallback)
}

func categoryNames() []string {
	names := []string{}
	for _, c := range task.Categories() {
		names = append(names, string(c))
	}
	return names
}

// FilterOptions
type FilterOptions struct {
	Filter string
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Filter, "filter", "f", string(task.All),
		"Which tasks to show: all, todos, completed or archived. All hides archived tasks.")
	_ = cmd.RegisterFlagCompletionFunc("filter", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := []string{}
		for _, f := range task.Filters() {
			names = append(names, string(f))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

func (o *FilterOptions) GetFilter() (task.Filter, error) {
	return task.ParseFilter(o.Filter)
}

// ConfirmOptions
type ConfirmOptions struct {
	Yes bool
}

func AddConfirmArgs(cmd *cobra.Command, o *ConfirmOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Do not ask for confirmation.")
}
