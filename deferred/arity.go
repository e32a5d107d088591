package deferred

func Effect1[T0 any](
	sc *Scheduler,
	get0 Getter[T0],
	fn func(T0) error,
) error {
	return Effect(sc, func(prev struct{}) (struct{}, error) {
		return prev, fn(
			get0(),
		)
	}, struct{}{})
}

func Effect2[T0, T1 any](
	sc *Scheduler,
	get0 Getter[T0],
	get1 Getter[T1],
	fn func(T0, T1) error,
) error {
	return Effect(sc, func(prev struct{}) (struct{}, error) {
		return prev, fn(
			get0(),
			get1(),
		)
	}, struct{}{})
}

func Effect3[T0, T1, T2 any](
	sc *Scheduler,
	get0 Getter[T0],
	get1 Getter[T1],
	get2 Getter[T2],
	fn func(T0, T1, T2) error,
) error {
	return Effect(sc, func(prev struct{}) (struct{}, error) {
		return prev, fn(
			get0(),
			get1(),
			get2(),
		)
	}, struct{}{})
}

func Effect4[T0, T1, T2, T3 any](
	sc *Scheduler,
	get0 Getter[T0],
	get1 Getter[T1],
	get2 Getter[T2],
	get3 Getter[T3],
	fn func(T0, T1, T2, T3) error,
) error {
	return Effect(sc, func(prev struct{}) (struct{}, error) {
		return prev, fn(
			get0(),
			get1(),
			get2(),
			get3(),
		)
	}, struct{}{})
}

func Effect5[T0, T1, T2, T3, T4 any](
	sc *Scheduler,
	get0 Getter[T0],
	get1 Getter[T1],
	get2 Getter[T2],
	get3 Getter[T3],
	get4 Getter[T4],
	fn func(T0, T1, T2, T3, T4) error,
) error {
	return Effect(sc, func(prev struct{}) (struct{}, error) {
		return prev, fn(
			get0(),
			get1(),
			get2(),
			get3(),
			get4(),
		)
	}, struct{}{})
}

func Effect6[T0, T1, T2, T3, T4, T5 any](
	sc *Scheduler,
	get0 Getter[T0],
	get1 Getter[T1],
	get2 Getter[T2],
	get3 Getter[T3],
	get4 Getter[T4],
	get5 Getter[T5],
	fn func(T0, T1, T2, T3, T4, T5) error,
) error {
	return Effect(sc, func(prev struct{}) (struct{}, error) {
		return prev, fn(
			get0(),
			get1(),
			get2(),
			get3(),
			get4(),
			get5(),
		)
	}, struct{}{})
}

func Effect7[T0, T1, T2, T3, T4, T5, T6 any](
	sc *Scheduler,
	get0 Getter[T0],
	get1 Getter[T1],
	get2 Getter[T2],
	get3 Getter[T3],
	get4 Getter[T4],
	get5 Getter[T5],
	get6 Getter[T6],
	fn func(T0, T1, T2, T3, T4, T5, T6) error,
) error {
	return Effect(sc, func(prev struct{}) (struct{}, error) {
		return prev, fn(
			get0(),
			get1(),
			get2(),
			get3(),
			get4(),
			get5(),
			get6(),
		)
	}, struct{}{})
}

func Effect8[T0, T1, T2, T3, T4, T5, T6, T7 any](
	sc *Scheduler,
	get0 Getter[T0],
	get1 Getter[T1],
	get2 Getter[T2],
	get3 Getter[T3],
	get4 Getter[T4],
	get5 Getter[T5],
	get6 Getter[T6],
	get7 Getter[T7],
	fn func(T0, T1, T2, T3, T4, T5, T6, T7) error,
) error {
	return Effect(sc, func(prev struct{}) (struct{}, error) {
		return prev, fn(
			get0(),
			get1(),
			get2(),
			get3(),
			get4(),
			get5(),
			get6(),
			get7(),
		)
	}, struct{}{})
}
