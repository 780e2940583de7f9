package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"strings"
)

// generates a setup_env.sh that exports the numbered json config fragments
// the service composes at startup, sourced from a local config directory.

func main() {
	type cfgData struct {
		File   string
		EnvVar string
	}

	var cfgDir string
	var tgtEnv string
	var port string
	flag.StringVar(&cfgDir, "dir", "", "local directory containing voyager-search config fragments")
	flag.StringVar(&tgtEnv, "env", "staging", "production or staging")
	flag.StringVar(&port, "port", "8080", "port to run the service on")
	flag.Parse()

	if cfgDir == "" {
		log.Fatal("dir is required")
	}
	if tgtEnv != "staging" && tgtEnv != "production" {
		log.Fatal("env must be staging or production")
	}

	cfgBase := path.Join(cfgDir, tgtEnv)

	log.Printf("Generate service config for %s from %s", tgtEnv, cfgBase)
	cfgFiles := []cfgData{
		{File: "service.json", EnvVar: "VOYAGER_SEARCH_WS_JSON_01"},
		{File: "solr.json", EnvVar: "VOYAGER_SEARCH_WS_JSON_02"},
		{File: "gazetteer.json", EnvVar: "VOYAGER_SEARCH_WS_JSON_03"},
		{File: "search.json", EnvVar: "VOYAGER_SEARCH_WS_JSON_04"},
		{File: "facets.json", EnvVar: "VOYAGER_SEARCH_WS_JSON_05"},
	}

	out := make([]string, 0)
	for _, cf := range cfgFiles {
		tgtFile := path.Join(cfgBase, cf.File)
		jsonBytes, err := os.ReadFile(tgtFile)
		if err != nil {
			log.Fatal(err.Error())
		}

		if cf.EnvVar == "VOYAGER_SEARCH_WS_JSON_01" {
			// this is the service config where the port is set to "8080"; override
			updated := strings.Replace(string(jsonBytes), "8080", port, 1)
			jsonBytes = []byte(updated)
		}

		cfg := strings.TrimSpace(string(jsonBytes))
		out = append(out, fmt.Sprintf("export %s='%s'", cf.EnvVar, cfg))
	}

	outF, err := os.Create("setup_env.sh")
	if err != nil {
		log.Fatal(err.Error())
	}
	outF.WriteString("#!/bin/bash\n\n")
	outF.WriteString(strings.Join(out, "\n"))
	outF.WriteString("\n")
	outF.Close()
	os.Chmod("setup_env.sh", 0777)
}
