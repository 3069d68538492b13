// cmd/tools/registry-updater/main.go
//
// Maintains configs/activity-registry.json, the catalog behind the worker
// fleet. Supports add, update, list, and validate.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"dealership-workers/pkg/registry"
)

const defaultRegistryPath = "configs/activity-registry.json"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "add":
		err = runAdd(os.Args[2:])
	case "update":
		err = runUpdate(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "validate":
		err = runValidate(os.Args[2:])
	case "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runAdd(args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	path := fs.String("path", defaultRegistryPath, "registry file")
	id := fs.String("id", "", "activity ID, e.g. submit-deal-to-fi")
	displayName := fs.String("displayName", "", "display name shown in the modeler")
	description := fs.String("description", "", "one-line description")
	category := fs.String("category", "", "sales, desking, or finance")
	taskType := fs.String("taskType", "", "Camunda task type, e.g. desking.submit-deal-to-fi")
	version := fs.String("version", "1.0.0", "activity version")
	status := fs.String("status", "planned", "planned, in-progress, completed, or verified")
	fs.Parse(args)

	if *id == "" || *displayName == "" || *description == "" || *category == "" || *taskType == "" {
		fs.Usage()
		return fmt.Errorf("id, displayName, description, category, and taskType are required")
	}

	reg, err := loadOrInit(*path)
	if err != nil {
		return err
	}
	for _, existing := range reg.Activities {
		if existing.ID == *id {
			return fmt.Errorf("activity %s already registered", *id)
		}
	}

	reg.Activities = append(reg.Activities, registry.Activity{
		ID:                   *id,
		DisplayName:          *displayName,
		Description:          *description,
		Category:             *category,
		Version:              *version,
		TaskType:             *taskType,
		ImplementationStatus: *status,
		InputSchema:          map[string]interface{}{},
		OutputSchema:         map[string]interface{}{},
		ErrorCodes:           []string{},
		Timeout:              "30s",
		Workflows:            []string{},
		Tags:                 []string{},
	})

	if err := reg.Validate(); err != nil {
		return fmt.Errorf("refusing to save: %w", err)
	}
	if err := save(reg, *path); err != nil {
		return err
	}
	fmt.Printf("added %s (%s)\n", *id, *taskType)
	return nil
}

func runUpdate(args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	path := fs.String("path", defaultRegistryPath, "registry file")
	id := fs.String("id", "", "activity ID to change")
	field := fs.String("field", "", "field to change (status, version, displayName, description, category, taskType, timeout, retries)")
	value := fs.String("value", "", "new value")
	fs.Parse(args)

	if *id == "" || *field == "" || *value == "" {
		fs.Usage()
		return fmt.Errorf("id, field, and value are required")
	}

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}

	activity := reg.FindByID(*id)
	if activity == nil {
		return fmt.Errorf("activity %s not found", *id)
	}
	if err := setField(activity, *field, *value); err != nil {
		return err
	}

	if err := reg.Validate(); err != nil {
		return fmt.Errorf("refusing to save: %w", err)
	}
	if err := save(reg, *path); err != nil {
		return err
	}
	fmt.Printf("updated %s: %s = %s\n", *id, *field, *value)
	return nil
}

func setField(a *registry.Activity, field, value string) error {
	switch field {
	case "status":
		a.ImplementationStatus = value
	case "version":
		a.Version = value
	case "displayName":
		a.DisplayName = value
	case "description":
		a.Description = value
	case "category":
		a.Category = value
	case "taskType":
		a.TaskType = value
	case "timeout":
		a.Timeout = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("retries must be an integer: %w", err)
		}
		a.Retries = retries
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	path := fs.String("path", defaultRegistryPath, "registry file")
	fs.Parse(args)

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}

	byCategory := map[string][]registry.Activity{}
	for _, a := range reg.Activities {
		byCategory[a.Category] = append(byCategory[a.Category], a)
	}

	for _, category := range []string{registry.CategorySales, registry.CategoryDesking, registry.CategoryFinance} {
		activities := byCategory[category]
		if len(activities) == 0 {
			continue
		}
		sort.Slice(activities, func(i, j int) bool { return activities[i].ID < activities[j].ID })
		fmt.Printf("%s:\n", category)
		for _, a := range activities {
			fmt.Printf("  %-28s %-36s %s\n", a.ID, a.TaskType, a.ImplementationStatus)
		}
	}
	return nil
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	path := fs.String("path", defaultRegistryPath, "registry file")
	fs.Parse(args)

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return err
	}
	fmt.Printf("registry ok, %d activities\n", len(reg.Activities))
	return nil
}

func loadOrInit(path string) (*registry.ActivityRegistry, error) {
	reg, err := registry.LoadRegistry(path)
	if os.IsNotExist(err) {
		return &registry.ActivityRegistry{
			Version:     "1.0.0",
			LastUpdated: time.Now().Format(time.RFC3339),
			Activities:  []registry.Activity{},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	return reg, nil
}

func save(reg *registry.ActivityRegistry, path string) error {
	reg.LastUpdated = time.Now().Format(time.RFC3339)

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create registry dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	return nil
}

func usage() {
	fmt.Println(`Usage: registry-updater <command> [flags]

Commands:
  add       register a new activity
  update    change one field of an activity
  list      print activities grouped by category
  validate  check the registry file

Examples:
  registry-updater add -id submit-deal-to-fi -displayName "Submit Deal to F&I" \
    -description "Moves a desked deal into the finance pipeline" \
    -category desking -taskType desking.submit-deal-to-fi
  registry-updater update -id submit-deal-to-fi -field status -value completed
  registry-updater list
  registry-updater validate -path configs/activity-registry.json`)
}
