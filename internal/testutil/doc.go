// Package testutil provides shared test helpers for abloop.
//
// It depends only on the standard library and testify so that internal
// tests of any package can import it.
//
// # Timeouts
//
//   - ContextWithTestDeadline(t, fallback) - context bounded by the test deadline
//   - ContextWithTimeout(t, d) - context with a logged timeout
//   - PlayerCallContext(t) - short context for one player call
//   - Eventually(t, cond, msg), Never(t, cond, d, msg) - polling assertions
//     with defaults sized for the loop controller
//
// # Environment
//
//   - SetupTestHome(t, yaml) - temp home with .abloop/config.yaml
//   - WriteTestFile(t, base, path, content) - writes a file in a test dir
//   - MustMarshalJSON(t, v), MustUnmarshalJSON(t, data, v)
//
// # Fixtures
//
//   - SampleConfigYAML, PartialConfigYAML, InvalidConfigYAML, OutOfRangeConfigYAML
//   - Float(v) - pointer helper for optional marker positions
package testutil
