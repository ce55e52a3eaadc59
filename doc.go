/*
Package funnelfy is a headless editor core for marketing funnel diagrams.

A funnel is a directed acyclic graph of steps (social channels, web pages, marketing
actions, conversion events) placed on a free-form canvas. The Editor owns the graph, the
undo history and the interaction state machine; the host owns rendering, persistence and
image capture, which it plugs in through options and the interfaces in package ports.

# Concept

The host forwards raw pointer and keyboard input to the Editor and draws whatever View
returns. Structural edits (add, delete, connect, a finished drag) are recorded in the
history exactly once; intermediate gesture frames are previews only. Connections that
would close a cycle are refused, so the graph stays a DAG at all times.

# Usage

	package main

	import (
		"context"
		"log"

		funnelfy "github.com/euwesleysilv4/meu-app-digitfy-sub003"
		"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	)

	func main() {
		ed, err := funnelfy.New(
			funnelfy.WithSaveHandler(func(ctx context.Context, req domain.SaveRequest) {
				log.Printf("save %d steps", len(req.Document.Nodes))
			}),
		)
		if err != nil {
			log.Fatal(err)
		}

		ig, _ := ed.AddStep(domain.KindSocial, domain.Point{X: 100, Y: 100})
		lp, _ := ed.AddStep(domain.KindWebPage, domain.Point{X: 400, Y: 100})
		if err := ed.Connect(ig, lp); err != nil {
			log.Fatal(err)
		}

		out, _ := ed.Export(context.Background(), "mermaid")
		log.Println(string(out))
	}

# Architecture

  - pkg/domain: steps, documents, events and sentinel errors.
  - pkg/graph: the step store and its DAG invariant.
  - pkg/portable: validation and JSON/YAML codecs for the portable document.
  - pkg/history: snapshot based undo/redo.
  - pkg/ports and pkg/adapters: template stores (memory, file, redis) and image capture.
  - pkg/session: concurrent access to live editors for network hosts.
*/
package funnelfy
