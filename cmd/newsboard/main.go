package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/devaloi/newsboard/internal/config"
	"github.com/devaloi/newsboard/internal/domain"
	"github.com/devaloi/newsboard/internal/proxy"
	"github.com/devaloi/newsboard/internal/store"
)

func main() {
	cfg := config.Load()

	s, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer s.Close()

	var opts []proxy.Option
	if cfg.TraceCache {
		opts = append(opts, proxy.WithTracer(proxy.LogTracer{}))
	}

	guest := proxy.New(domain.Identity{Name: "Norman", Role: domain.Guest}, s, opts...)
	user := proxy.New(domain.Identity{Name: "Bartek", Role: domain.User}, s, opts...)
	mod := proxy.New(domain.Identity{Name: "Inga", Role: domain.Moderator}, s, opts...)
	admin := proxy.New(domain.Identity{Name: "Dawid", Role: domain.Admin}, s, opts...)

	log.Printf("newsboard demo on %s store", cfg.Backend)

	show := func(resp domain.Response) {
		if err := render(os.Stdout, resp, cfg.OutputJSON); err != nil {
			log.Printf("render: %v", err)
		}
	}

	// Adding messages.
	show(guest.Create("I like pancakes", "Pancakes are yummy :)"))
	show(user.Create("Breaking News", "New breakthrough in AI technology."))
	show(mod.Create("Market Update", "Stocks soar after positive earnings reports."))

	// Reading, including a message that does not exist.
	show(guest.Read(1))
	show(user.Read(2))
	show(mod.Read(3))

	// Editing.
	show(mod.Update(1, "Updated content: AI technology is advancing rapidly."))
	show(admin.Read(1))
	show(user.Update(1, "Updated content: technology is advancing rapidly."))
	show(admin.Read(1))

	// Deleting.
	show(mod.Delete(2))
	show(mod.Read(2))
	show(admin.Delete(2))
	show(admin.Read(2))
}

// render writes resp as "<Status>: <Message>" or, with asJSON, as one JSON object per line.
func render(w io.Writer, resp domain.Response, asJSON bool) error {
	if !asJSON {
		_, err := fmt.Fprintln(w, resp)
		return err
	}
	data, err := domain.Encode(resp)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
