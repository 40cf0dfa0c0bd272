// Package model defines the provider-neutral completion abstraction used by
// players to obtain move suggestions. Adapters for concrete providers live
// in subpackages (model/openai, model/anthropic); MockModel supports tests
// and offline examples. Move generation needs a handful of tokens, so the
// interface is deliberately single-shot and non-streaming.
package model
