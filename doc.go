// Package gridsearch is your in-memory playground for running and
// comparing uninformed search strategies on 2-D grids — including grids
// whose obstacles appear while the search is still running.
//
// 🚀 What is gridsearch?
//
//	A small, deterministic library that brings together:
//		• Grid model: walls, dynamic obstacles, fixed 8-direction expansion order
//		• Obstacle injection: seed-reproducible mid-search obstacle spawns
//		• Six strategies: BFS, DFS, UCS, DLS, IDDFS, Bidirectional
//		• One step-wise contract: pause, inspect, and render every step
//		• Metrics: explored nodes, obstacle encounters, path cost
//
// ✨ Why choose gridsearch?
//
//   - Deterministic – one injectable random source; a fixed seed replays a run exactly
//   - Step-driven – the caller advances the machine; nothing loops behind your back
//   - Comparable – all strategies share one execution contract and one grid
//   - Extensible – step hooks (OnStep) feed any visualizer or recorder
//
// Everything is organized under two subpackages:
//
//	grid/   — cell states, walkability, neighbor order, obstacle spawner
//	search/ — the step-wise engine, frontier disciplines, metrics recorder
//
// Quick ASCII example:
//
//	S . . . .        S = start, T = target, # = wall
//	. # # # .
//	. . . # .
//	# # . # .
//	. . . . T
//
// Dive into examples/ for a full strategy comparison and a web
// visualizer wired to the step callback.
//
//	go get github.com/katalvlaran/gridsearch
package gridsearch
