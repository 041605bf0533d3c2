package lsh

// LargestPrime is the universal-hash modulus used by the L1 family,
// the largest prime below 2^32.
const LargestPrime uint64 = 4294967291 // 2^32 - 5

// LargestPrime64 is the universal-hash modulus used by the Lp family,
// a 61-bit Mersenne prime. The Lp accumulator runs in 128-bit
// precision (math/big), so a modulus this size never risks the
// overflow a 64-bit accumulator would see.
const LargestPrime64 uint64 = 2305843009213693951 // 2^61 - 1
