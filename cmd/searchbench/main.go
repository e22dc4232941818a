package main

import (
	"flag"
	"os"
	"runtime/pprof"
	"time"

	"chess-opponent/config"
	"chess-opponent/engine"
	"chess-opponent/position"
)

func main() {
	depthFlag := flag.Int("depth", 3, "search depth in plies")
	qdepthFlag := flag.Int("qdepth", engine.DefaultQuiescenceDepth, "quiescence depth cap")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", "", "FEN to search (empty = startpos)")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	checkStack := flag.Bool("checkstack", false, "verify the position is restored after every search")
	flag.Parse()

	log := config.NewLogger(config.LogConfig{Style: "console", Level: "info"}, os.Stderr)

	if *depthFlag <= 0 {
		log.Fatal().Int("depth", *depthFlag).Msg("depth must be positive")
	}
	fen := position.StartFEN
	if *fenFlag != "" {
		fen = *fenFlag
	}
	engine.DebugStackCheck = *checkStack

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
		}()
	}

	budget := engine.NewSearchBudget(*depthFlag)
	budget.QuiescenceDepth = *qdepthFlag

	var total engine.Stats
	startAll := time.Now()
	for i := 0; i < *repeatFlag; i++ {
		pos, err := position.Parse(fen)
		if err != nil {
			log.Fatal().Err(err).Str("fen", fen).Msg("bad position")
		}
		res, err := engine.NewSearcher(log).Search(pos, budget)
		if err != nil {
			log.Fatal().Err(err).Msg("search failed")
		}
		total.Add(res.Stats)
		log.Info().
			Int("iteration", i+1).
			Str("bestmove", res.Move.String()).
			Int("score", res.Score).
			Object("stats", res.Stats).
			Dur("time", res.Elapsed).
			Msg("search")
	}
	elapsed := time.Since(startAll)
	log.Info().
		Object("stats", total).
		Dur("total", elapsed).
		Float64("nps", float64(total.Nodes+total.QNodes)/elapsed.Seconds()).
		Msg("searchbench done")
}
