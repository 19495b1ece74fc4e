package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/noah-isme/internship-admin/pkg/apiclient"
	"github.com/noah-isme/internship-admin/pkg/config"
	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
	"github.com/noah-isme/internship-admin/pkg/session"
)

type target struct {
	Path     string
	Critical bool
}

var defaultTargets = []target{
	{Path: "/api/departments", Critical: true},
	{Path: "/api/batches", Critical: true},
	{Path: "/api/students", Critical: true},
	{Path: "/api/course-advisors", Critical: true},
	{Path: "/api/internships/all", Critical: true},
	{Path: "/api/internships/no-internship"},
}

type check struct {
	Target   target
	Status   int
	Duration time.Duration
	Error    error
}

func main() {
	var (
		base    string
		timeout time.Duration
		extra   string
	)

	flag.StringVar(&base, "base", "", "API base URL (defaults to UPSTREAM_BASE_URL)")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "per-request timeout")
	flag.StringVar(&extra, "paths", "", "comma separated extra GET paths to check")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if base == "" {
		base = cfg.Upstream.BaseURL
	}

	ctx := context.Background()
	store, closeStore, err := session.NewStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open session store: %v", err)
	}
	defer closeStore() //nolint:errcheck

	sessions := session.NewManager(store, nil)
	current, err := sessions.Restore(ctx)
	if err != nil {
		log.Fatalf("failed to restore session: %v", err)
	}
	if !current.Active() {
		log.Fatalf("no stored session; log in through the console first")
	}

	client := apiclient.New(apiclient.Config{BaseURL: base, Timeout: timeout}, sessions)

	targets := append([]target{}, defaultTargets...)
	for _, p := range strings.Split(extra, ",") {
		if p = strings.TrimSpace(p); p != "" {
			targets = append(targets, target{Path: p})
		}
	}

	var checks []check
	failed := 0
	for _, t := range targets {
		p := run(ctx, client, t)
		if p.Error != nil && t.Critical {
			failed++
		}
		checks = append(checks, p)
	}

	printReport(checks)
	fmt.Printf("Critical failures: %d of %d targets\n", failed, len(targets))
	if failed > 0 {
		os.Exit(1)
	}
}

func run(ctx context.Context, client *apiclient.Client, t target) check {
	p := check{Target: t}
	start := time.Now()
	resp, err := client.Do(ctx, http.MethodGet, t.Path, nil)
	p.Duration = time.Since(start)
	if resp != nil {
		p.Status = resp.Status
	}
	if err != nil {
		p.Error = err
		if p.Status == 0 {
			p.Status = appErrors.FromError(err).Status
		}
	}
	return p
}

func printReport(checks []check) {
	fmt.Println("Endpoint check report")
	fmt.Println("=====================")
	for _, p := range checks {
		status := "OK"
		if p.Error != nil {
			status = "FAIL"
		}
		fmt.Printf("%-4s GET %-34s status=%d duration=%s", status, p.Target.Path, p.Status, p.Duration.Round(time.Millisecond))
		if p.Target.Critical {
			fmt.Print(" [critical]")
		}
		fmt.Println()
		if p.Error != nil {
			fmt.Printf("     error: %v\n", p.Error)
		}
	}
}
