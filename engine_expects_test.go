package main

// @generated from engine_test.go

//go:generate go run scripts/gen_engine_expects.go -- engine_test.go engine_expects_test.go

import "github.com/jcorbin/incident/internal/graph"

func expectEngineError(err error) func(engineTestCase) engineTestCase {
	return func(et engineTestCase) engineTestCase {
		return et.expectError(err)
	}
}

func expectEngineOutput(output string) func(engineTestCase) engineTestCase {
	return func(et engineTestCase) engineTestCase {
		return et.expectOutput(output)
	}
}

func expectEngineStack(cmd int, bits string) func(engineTestCase) engineTestCase {
	return func(et engineTestCase) engineTestCase {
		return et.expectStack(cmd, bits)
	}
}

func expectEngineIP(loc graph.Loc) func(engineTestCase) engineTestCase {
	return func(et engineTestCase) engineTestCase {
		return et.expectIP(loc)
	}
}

func expectEngineCommands(count int) func(engineTestCase) engineTestCase {
	return func(et engineTestCase) engineTestCase {
		return et.expectCommands(count)
	}
}

func expectEngineAnchor(anchor int) func(engineTestCase) engineTestCase {
	return func(et engineTestCase) engineTestCase {
		return et.expectAnchor(anchor)
	}
}

func expectEngineInputLeft(n int) func(engineTestCase) engineTestCase {
	return func(et engineTestCase) engineTestCase {
		return et.expectInputLeft(n)
	}
}
