/* Package main: INCIDENT -- a language with no keywords

Incident programs have no fixed syntax. Any substring that occurs exactly
three times in the program text, that cannot be extended in either direction
while still occurring three times, and that does not overlap any other such
substring, is a command; every other byte is noise.

Each command owns a stack of bits, and its three occurrences mean, in text
order:

	first   push a 0 onto the command's stack
	second  pop a bit from the command's stack
	third   push a 1 onto the command's stack

Control flow is implied by the program text as well. Execution continues at
the next command occurrence in the text after one of the current command's
occurrences, chosen by what just happened: after popping a 0 it continues
after the push-0 occurrence, after a push it continues after the pop
occurrence, and after popping a 1 it continues after the push-1 occurrence.
Where no occurrence follows, the program halts.

Popping an empty stack reads the next bit of standard input instead, least
significant bit first; at end of input such a pop behaves as though a bit
had been pushed. Output comes from the anchor, the command whose first
occurrence sits in the middle of all commands' first occurrences: every
bit pushed onto its stack is also written to standard output, least
significant bit first, a byte at a time.

A push is skipped when the same command has already pushed the same bit
since the last pop of any command; execution then moves on as though the
bit had been pushed and immediately popped. This keeps tight push cycles
from growing stacks without bound.

For debugging, fragment mode (-f) runs each part of a program from a ^ byte
to the next $ byte on its own, and trace mode (-t) draws the machine state
after every step:

	░  noise
	▶  the occurrence about to execute
	←→ a pop occurrence whose stack holds a single 0 or 1
	⇇⇆⇄⇉ a pop occurrence whose stack holds two bits
	↰↱ a pop occurrence whose deeper stack has a 0 or 1 on top
	✓✗ a push occurrence that will be executed or skipped

*/
package main
