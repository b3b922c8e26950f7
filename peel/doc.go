// Package peel provides the core phylogenetic likelihood engine: a
// double-buffered store of partials and transition matrices, and the fused
// peeling (pruning) kernels that combine them into per-site log-likelihoods
// under Felsenstein's algorithm.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - instance.go: Instance construction and the scalar dimensions (S, P, C, E, M, T, B)
//   - buffers.go: the double-buffered partials/tip-state store (C1)
//   - eigen.go: the per-eigensystem Uik·Vkj tensor cache (C2)
//   - transition.go: transition-matrix construction from the eigen cache (C3)
//   - peeling.go: the three fused inner kernels (C4)
//   - integration.go: root and edge log-likelihood reduction (C5)
//   - snapshot.go: store/restore by index-array swap (C6)
//
// # Architecture
//
// A peel.Instance is a single bundle of preallocated buffers sized once at
// construction and never resized. Callers drive it imperatively: load tip
// data once, then repeatedly submit transition-matrix updates and
// partials-update operations in leaf-to-root order, then request
// log-likelihoods. The engine does not track a tree topology or validity;
// the caller is responsible for topological ordering of operations.
//
// Extension points reserved by the specification but not implemented here
// (rescaling beyond the documented per-pattern max-scan, and analytic
// derivative outputs) are described in rescale.go and integration.go.
package peel
