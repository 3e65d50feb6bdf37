// Package node binds the spatial panners to a block-driven host.
//
// An Operator owns its output blocks and reads its inputs through bound
// references that the host may repoint at any time between calls. The host
// calls Reset before the first block and on every graph reset, then Execute
// once per block. Execute never allocates.
//
// Registry maps operator class names to factories so a host can build
// operators by name; DefaultRegistry knows the ITD and stereo panners.
// Render drives an operator over a whole signal for offline use.
package node
