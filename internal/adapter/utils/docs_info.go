package utils

//run redis
//docker run -p 6379:6379 -d redis

//run qdrant
//docker run -p 6333:6333 -p 6334:6334 -v vectorDBData:/qdrant/storage qdrant/qdrant

//run a local model behind an OpenAI compatible server
//llama-server -m models/Qwen2-7B-Instruct.Q5_K_M.gguf --port 8081
//ollama pull nomic-embed-text

//swagger init
//swag init -g cmd/docstore/main.go --parseDependency --parseInternal --dir ./ --output ./cmd/docstore/docs
