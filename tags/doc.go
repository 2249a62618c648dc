// Package tags provides the fixed-width bit-vector tag type used by the
// bit-vector metrics.
//
// A BitVector has a width fixed at construction and is stored as a little
// sequence of uint64 words. All operations treat the vector as an unsigned
// integer of exactly Width bits: arithmetic wraps modulo 2^Width and bits
// above the width are always zero.
//
// BitVectors are value-like: operations return new vectors and never mutate
// their receivers, so a tag stored in a bin cannot change behind its back.
package tags
