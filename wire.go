package main

import (
	"log"

	"NexiAssistant/app/agent"
	"NexiAssistant/app/clients"
	"NexiAssistant/app/configs"
	"NexiAssistant/app/metrics"
	"NexiAssistant/app/models"
	"NexiAssistant/app/rag"
	"NexiAssistant/app/storage"
)

func getStorage(cfg *configs.Config) (storage.Interface, error) {
	return storage.NewSQLiteStorage(cfg.Storage.Path)
}

func getModel(cfg *configs.Config) models.Interface {
	return models.NewLLMClient(cfg.Model, cfg.Embeddings)
}

func getEngine(cfg *configs.Config, model models.Interface, db storage.Interface,
	m *metrics.Metrics) (rag.Interface, error) {
	return rag.NewEngine(model, db, m, cfg.RAG, cfg.Embeddings.Dimension)
}

func getAssistant(model models.Interface, engine rag.Interface, db storage.Interface,
	m *metrics.Metrics) *agent.Nexi {
	return agent.New(model, engine, db, m)
}

func getClients(cfg *configs.Config) []clients.Interface {
	var list []clients.Interface

	if cfg.Session.Enabled {
		list = append(list, clients.NewLiveKitClient(cfg.Session))
	}

	if cfg.Discord.Enabled {
		dc, err := clients.NewDiscordClient(cfg.Discord)
		if err != nil {
			log.Printf("❌ Error creating Discord client: %v", err)
		} else {
			list = append(list, dc)
		}
	}

	if len(list) == 0 {
		log.Println("⚠️ No session connectors enabled; the worker will idle")
	}
	return list
}
