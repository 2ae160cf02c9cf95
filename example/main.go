package main

import (
	"context"
	"log"

	"github.com/dotarpa/mailprep"
	"github.com/dotarpa/mailprep/tpl"
)

func main() {
	cfg, err := mailprep.LoadFile("example/config.yaml")
	if err != nil {
		log.Fatalf("LoadFile error: %v", err)
	}

	t, err := tpl.ParseFile("example/template.txt")
	if err != nil {
		log.Fatalf("ParseFile error: %v", err)
	}

	msg, err := t.Substitute(map[string]string{
		"hostname": "webserver1",
		"topic":    "Daily Report",
		"body":     "Server rebooted, disk space low.",
	})
	if err != nil {
		log.Fatalf("Substitute error: %v", err)
	}

	out, err := mailprep.Send(context.Background(), *cfg, msg)
	if err != nil {
		log.Fatalf("Send failed: %v", err)
	}
	if !out.OK {
		log.Fatalf("Send failed: %s", out.Err)
	}
	log.Println("Mail sent!")
}
